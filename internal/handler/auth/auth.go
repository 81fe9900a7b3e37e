// File: internal/handler/auth/auth.go
package auth

import (
	"meisterverbund/internal/service"
	"meisterverbund/internal/store"
)

// 測試時替換
var (
	authenticateUser = service.AuthenticateUser
	hashPassword     = service.HashPassword
	issueSession     = service.IssueSession
	revokeSession    = service.RevokeSession
	createUser       = store.CreateUser
)
