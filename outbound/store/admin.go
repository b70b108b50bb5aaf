package store

import (
	"context"

	"design-folio/model"
)

const findAdminByEmailQuery = `
SELECT id, email, password_hash
FROM admin_users
WHERE email = $1
`

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	var u model.AdminUser
	err := s.db.QueryRow(ctx, findAdminByEmailQuery, email).Scan(&u.ID, &u.Email, &u.PasswordHash)
	return u, err
}
