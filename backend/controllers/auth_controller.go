package controllers

import (
	"strings"
	"time"

	"bearinmind/backend/config"
	"bearinmind/backend/dto"
	"bearinmind/backend/services"
	"bearinmind/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// Auth clients. API clients read the token from the Authorization header,
// WEB clients get it as an HttpOnly cookie.
const (
	clientAPI = "API"
	clientWEB = "WEB"
)

type AuthController struct {
	Auth *services.AuthService
	Cfg  *config.Config
}

func NewAuthController(auth *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{Auth: auth, Cfg: cfg}
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return the token in a header or a cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.Credentials true "Login credentials"
// @Param client query string false "API or WEB" default(API)
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	client, err := clientQuery(c)
	if err != nil {
		return err
	}
	var creds dto.Credentials
	if err := parseBody(c, &creds); err != nil {
		return err
	}

	session, err := ac.Auth.LogIn(c.UserContext(), creds)
	if err != nil {
		return err
	}
	ac.writeToken(c, client, session.Token)
	return utils.OK(c, session.Response)
}

// SignUp godoc
// @Summary Register a new user
// @Description Creates a student account and logs it in
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUser true "User registration data"
// @Param client query string false "API or WEB" default(API)
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/signup [post]
func (ac *AuthController) SignUp(c *fiber.Ctx) error {
	client, err := clientQuery(c)
	if err != nil {
		return err
	}
	var req dto.CreateUser
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := ac.Auth.SignUp(c.UserContext(), req)
	if err != nil {
		return err
	}
	ac.writeToken(c, client, session.Token)
	return utils.OK(c, session.Response)
}

// Logout godoc
// @Summary Log out
// @Description Expires the token cookie of web clients
// @Tags auth
// @Param client query string false "API or WEB" default(API)
// @Success 204
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	client, err := clientQuery(c)
	if err != nil {
		return err
	}
	if client == clientWEB {
		c.Cookie(ac.tokenCookie("", time.Unix(0, 0)))
	}
	return utils.NoContent(c)
}

func (ac *AuthController) writeToken(c *fiber.Ctx, client, token string) {
	if client == clientWEB {
		c.Cookie(ac.tokenCookie(token, time.Now().Add(ac.Cfg.JWTLifetime())))
		return
	}
	c.Set(fiber.HeaderAuthorization, ac.Cfg.JWTHeaderPrefix+token)
}

func (ac *AuthController) tokenCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     ac.Cfg.JWTCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func clientQuery(c *fiber.Ctx) (string, error) {
	client := strings.ToUpper(c.Query("client", clientAPI))
	if client != clientAPI && client != clientWEB {
		return "", invalidArgument("client")
	}
	return client, nil
}
