// Package seed 建立管理員帳號與範例內容，重複執行不會產生重複資料
package seed

import (
	"context"
	"errors"
	"fmt"

	"meisterverbund/internal/database"
	"meisterverbund/internal/model"
	"meisterverbund/internal/service"
	"meisterverbund/internal/store"

	"go.uber.org/zap"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
}

var (
	getUserByEmail = store.GetUserByEmail
	createUser     = store.CreateUser
	countCompanies = store.CountCompanies
	createCompany  = store.CreateCompany
	countPosts     = store.CountPosts
	createPost     = store.CreatePost
	hashPassword   = service.HashPassword
)

func strPtr(s string) *string { return &s }

func sampleCompanies() []*model.Company {
	return []*model.Company{
		{
			Name:             "Meisterbetrieb Müller",
			Description:      "Ihr Experte für Dach und Fach seit 1950. Wir bieten erstklassige Handwerksqualität.",
			Category:         "Dachdecker",
			Address:          "Handwerksstraße 1",
			City:             "Wien",
			State:            "Wien",
			Phone:            strPtr("+43 1 2345678"),
			Website:          strPtr("https://example.com"),
			ImageURL:         strPtr("https://images.unsplash.com/photo-1503387762-592deb58ef4e"),
			IsMasterVerified: true,
		},
		{
			Name:             "Tischlerei Huber",
			Description:      "Maßgefertigte Möbel aus Meisterhand. Küchen, Schränke und mehr.",
			Category:         "Tischler",
			Address:          "Holzweg 7",
			City:             "Graz",
			State:            "Steiermark",
			Phone:            strPtr("+43 316 123456"),
			ImageURL:         strPtr("https://images.unsplash.com/photo-1581092160562-40aa08e78837"),
			IsMasterVerified: true,
		},
	}
}

// Run 依序建立管理員、範例公司與歡迎文章，已存在的部分會略過
func Run(ctx context.Context, db database.DB, opts Options, log *zap.Logger) error {
	admin, err := ensureAdmin(ctx, db, opts, log)
	if err != nil {
		return err
	}

	n, err := countCompanies(ctx, db)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Info("seeding companies")
		for _, c := range sampleCompanies() {
			if _, err := createCompany(ctx, db, c); err != nil {
				return err
			}
		}
	}

	n, err = countPosts(ctx, db)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Info("seeding posts")
		_, err := createPost(ctx, db, &model.Post{
			Title:           "Willkommen beim Meisterverbund",
			Slug:            "willkommen",
			ContentMarkdown: "Wir freuen uns, Ihnen das neue Portal für österreichische Meisterbetriebe vorstellen zu dürfen.",
			Type:            model.PostTypeNews,
			Published:       true,
			AuthorID:        admin.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureAdmin(ctx context.Context, db database.DB, opts Options, log *zap.Logger) (*model.User, error) {
	admin, err := getUserByEmail(ctx, db, opts.AdminEmail)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if opts.AdminPassword == "" {
		return nil, fmt.Errorf("seed: admin password is empty")
	}

	log.Info("seeding admin user", zap.String("email", opts.AdminEmail))
	hash, err := hashPassword(opts.AdminPassword)
	if err != nil {
		return nil, err
	}
	return createUser(ctx, db, &model.User{
		Email:        opts.AdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
}
