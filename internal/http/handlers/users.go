package handlers

import (
	"context"

	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/geocoder89/todohub/internal/service"
	"github.com/gin-gonic/gin"
)

type AccountService interface {
	Register(ctx context.Context, in user.Credentials) (user.Public, error)
	Login(ctx context.Context, in user.Credentials) (service.LoginResult, error)
}

type UsersHandler struct {
	accounts AccountService
}

func NewUsersHandler(accounts AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

func (h *UsersHandler) SignUp(ctx *gin.Context) {
	var req user.Credentials

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := withRequestTimeout(ctx)
	defer cancel()

	pub, err := h.accounts.Register(cctx, req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	RespondCreated(ctx, "user created successfully", pub)
}

func (h *UsersHandler) SignIn(ctx *gin.Context) {
	var req user.Credentials

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := withRequestTimeout(ctx)
	defer cancel()

	res, err := h.accounts.Login(cctx, req)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	RespondOK(ctx, "user signed in successfully", res)
}
