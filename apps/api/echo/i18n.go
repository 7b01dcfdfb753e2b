package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/katalog/core"
)

func registerI18nAPI(g *echo.Group, i18n *core.I18n) {
	g.GET("/i18n", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, i18n.Languages())
	})
	g.GET("/i18n/:lang", func(ctx echo.Context) error {
		lang := ctx.Param("lang")
		if !i18n.Has(lang) {
			return errHttpNotFound
		}
		return ctx.JSON(http.StatusOK, i18n.Table(lang))
	})
}
