package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/unrolled/secure"
)

// Secure sets the standard security response headers. HSTS is only sent in production.
func Secure(production bool) echo.MiddlewareFunc {
	opts := secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      !production,
	}
	if production {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
	}
	return echo.WrapMiddleware(secure.New(opts).Handler)
}
