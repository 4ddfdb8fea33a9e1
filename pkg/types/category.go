package types

import "time"

type IndustryCategory struct {
	ID        string    `db:"id"`
	Name      string    `db:"name" form:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
