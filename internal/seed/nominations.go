package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"entrepreneurawards/internal/awards"
	"entrepreneurawards/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seeded nominations carry this prefix on the nominator name so a reset
// only removes rows the seeder created.
const seedMarker = "[seed] "

type fakePerson struct {
	Name  string
	Phone string
}

var fakeEntrepreneurs = []fakePerson{
	{Name: "Ava Williams", Phone: "+1 555-0101"},
	{Name: "Liam Johnson", Phone: "+1 555-0102"},
	{Name: "Noah Brown", Phone: "+1 555-0103"},
	{Name: "Mia Davis", Phone: "+1 555-0104"},
	{Name: "Elijah Garcia", Phone: "+1 555-0105"},
	{Name: "Olivia Miller", Phone: "+1 555-0106"},
	{Name: "Ethan Moore", Phone: "+1 555-0107"},
	{Name: "Sophia Taylor", Phone: "+1 555-0108"},
}

var fakeNominators = []fakePerson{
	{Name: "Grace Thompson", Phone: "+1 555-0201"},
	{Name: "Daniel White", Phone: "+1 555-0202"},
	{Name: "Chloe Harris", Phone: "+1 555-0203"},
	{Name: "Samuel Clark", Phone: "+1 555-0204"},
}

var fakeBusinesses = []struct {
	Name     string
	Location string
}{
	{Name: "Sunrise Bakery", Location: "Accra"},
	{Name: "Bright Path Tutoring", Location: "Kumasi"},
	{Name: "GreenLeaf Farms", Location: "Tamale"},
	{Name: "Swift Couriers", Location: "Takoradi"},
	{Name: "Threadline Studio", Location: "Cape Coast"},
	{Name: "Kora Health Clinic", Location: "Ho"},
	{Name: "Pixel & Paper", Location: "Accra"},
	{Name: "Harbor Hardware", Location: "Tema"},
}

type weightedNominationStatus struct {
	Status types.NominationStatus
	Weight int
}

var weightedStatuses = []weightedNominationStatus{
	{Status: types.NominationStatusPending, Weight: 50},
	{Status: types.NominationStatusApproved, Weight: 35},
	{Status: types.NominationStatusRejected, Weight: 15},
}

// SeedFakeNominations submits count nominations through the awards service
// and reviews each one to a weighted random status. Approved nominations
// are promoted and given a jobs count so the public directory has content.
func SeedFakeNominations(ctx context.Context, pool *pgxpool.Pool, svc *awards.Service, count int, reset bool) error {
	if reset {
		if err := resetFakeNominations(ctx, pool); err != nil {
			return err
		}
	}

	if count <= 0 {
		fmt.Println("Skipping fake nominations seed because count <= 0")
		return nil
	}

	categories, err := svc.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories for fake nominations: %w", err)
	}
	if len(categories) == 0 {
		return fmt.Errorf("no categories found; run category seed first")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created, promoted := 0, 0
	for i := 0; i < count; i++ {
		entrepreneur := fakeEntrepreneurs[rng.Intn(len(fakeEntrepreneurs))]
		nominator := fakeNominators[rng.Intn(len(fakeNominators))]
		business := fakeBusinesses[rng.Intn(len(fakeBusinesses))]

		nomination, err := svc.SubmitNomination(ctx, types.NominationForm{
			EntrepreneurName:  entrepreneur.Name,
			EntrepreneurPhone: entrepreneur.Phone,
			BusinessName:      business.Name,
			BusinessLocation:  business.Location,
			BusinessType:      categories[rng.Intn(len(categories))].Name,
			NominatorName:     seedMarker + nominator.Name,
			NominatorPhone:    nominator.Phone,
		})
		if err != nil {
			return fmt.Errorf("failed to create fake nomination %d: %w", i+1, err)
		}
		created++

		status := pickWeightedStatus(rng)
		if status == types.NominationStatusPending {
			continue
		}

		result, err := svc.UpdateNominationStatus(ctx, nomination.ID, status, nil)
		if err != nil {
			return fmt.Errorf("failed to review fake nomination %s: %w", nomination.ID, err)
		}
		if result.PromotionErr != nil {
			return fmt.Errorf("failed to promote fake nomination %s: %w", nomination.ID, result.PromotionErr)
		}
		if !result.Promoted {
			continue
		}

		profile := result.Entrepreneur
		profile.JobsCreated = rng.Intn(60) + 1
		profile.Pinned = rng.Intn(100) < 15
		if _, err := svc.SaveEntrepreneur(ctx, profile); err != nil {
			return fmt.Errorf("failed to update fake entrepreneur %s: %w", profile.ID, err)
		}
		promoted++
	}

	fmt.Printf("Fake nominations seeded: %d created, %d promoted\n", created, promoted)
	return nil
}

func resetFakeNominations(ctx context.Context, pool *pgxpool.Pool) error {
	like := seedMarker + "%"

	result, err := pool.Exec(ctx, `DELETE FROM entrepreneurs WHERE nomination_id IN (SELECT id FROM nominations WHERE nominator_name LIKE $1)`, like)
	if err != nil {
		return fmt.Errorf("failed to reset seeded entrepreneurs: %w", err)
	}
	fmt.Printf("Reset seeded entrepreneurs: %d deleted\n", result.RowsAffected())

	result, err = pool.Exec(ctx, `DELETE FROM nominations WHERE nominator_name LIKE $1`, like)
	if err != nil {
		return fmt.Errorf("failed to reset seeded nominations: %w", err)
	}
	fmt.Printf("Reset seeded nominations: %d deleted\n", result.RowsAffected())

	return nil
}

func pickWeightedStatus(rng *rand.Rand) types.NominationStatus {
	total := 0
	for _, item := range weightedStatuses {
		total += item.Weight
	}

	roll := rng.Intn(total)
	running := 0
	for _, item := range weightedStatuses {
		running += item.Weight
		if roll < running {
			return item.Status
		}
	}

	return types.NominationStatusPending
}
