package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// MountSwagger monta la UI de documentación en /docs si el archivo de
// especificación existe. El middleware de contrib lee el archivo al construirse
// y entra en pánico si falta, así que sin archivo la API arranca sin docs.
// Devuelve si la UI quedó montada.
func MountSwagger(app *fiber.App, filePath, title string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
	return true
}
