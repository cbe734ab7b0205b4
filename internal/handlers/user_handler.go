package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/flash"
	"github.com/wanderlust-travel/api/internal/middleware"
	"github.com/wanderlust-travel/api/internal/models"
	"github.com/wanderlust-travel/api/internal/services"
)

const accessTokenCookie = "access_token"

func setAccessToken(c *gin.Context, token string, secure bool) {
	c.SetCookie(accessTokenCookie, token, int(services.TokenTTL.Seconds()), "/", "", secure, true)
}

func clearAccessToken(c *gin.Context, secure bool) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", secure, true)
}

// SignupForm renders the signup form context.
func SignupForm(fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ViewResponse(gin.H{
			"view": "users/signup",
		}, fl.Pop(c)))
	}
}

// Signup registers a local account, signs the user in and redirects to
// the listing index.
func Signup(us *services.UserService, fl *flash.Store, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.SignupInput
		if err := c.ShouldBind(&input); err != nil {
			fl.Add(c, flash.NoticeError, err.Error())
			c.Redirect(http.StatusSeeOther, "/users/signup")
			return
		}

		_, token, err := us.Signup(c.Request.Context(), input)
		if err != nil {
			fl.Add(c, flash.NoticeError, apperr.MessageOf(err))
			c.Redirect(http.StatusSeeOther, "/users/signup")
			return
		}

		setAccessToken(c, token, secureCookies)
		fl.Add(c, flash.NoticeSuccess, "Welcome to Wanderlust!")

		target := fl.PopRedirectURL(c)
		if target == "" {
			target = "/listings"
		}
		c.Redirect(http.StatusSeeOther, target)
	}
}

// LoginForm renders the login form context, including the page the user
// was bounced from so the form can show where login will land.
func LoginForm(fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := gin.H{"view": "users/login"}
		if target, ok := c.Get("redirect_url"); ok {
			payload["redirect_url"] = target
		}
		c.JSON(http.StatusOK, models.ViewResponse(payload, fl.Pop(c)))
	}
}

// Login authenticates by email and password, then sends the user back to
// the page that triggered the login prompt, or to the listing index.
func Login(us *services.UserService, fl *flash.Store, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBind(&input); err != nil {
			fl.Add(c, flash.NoticeError, err.Error())
			c.Redirect(http.StatusSeeOther, "/users/login")
			return
		}

		_, token, err := us.Login(c.Request.Context(), input)
		if err != nil {
			fl.Add(c, flash.NoticeError, "Invalid email or password")
			c.Redirect(http.StatusSeeOther, "/users/login")
			return
		}

		setAccessToken(c, token, secureCookies)
		fl.Add(c, flash.NoticeSuccess, "Welcome back!")

		target := fl.PopRedirectURL(c)
		if target == "" {
			target = "/listings"
		}
		c.Redirect(http.StatusSeeOther, target)
	}
}

// Profile returns the signed-in user's account record.
func Profile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Error(apperr.Unauthorized("Unauthorized"))
			return
		}

		user, err := us.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}

// Logout blacklists the current token, drops the cookie and redirects to
// the listing index.
func Logout(us *services.UserService, fl *flash.Store, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(accessTokenCookie)
		if err == nil && token != "" {
			if err := us.Logout(c.Request.Context(), token); err != nil {
				c.Error(err)
				return
			}
		}

		clearAccessToken(c, secureCookies)
		fl.Add(c, flash.NoticeSuccess, "You have been logged out!")
		c.Redirect(http.StatusSeeOther, "/listings")
	}
}
