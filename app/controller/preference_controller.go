package controller

import (
	"net/http"

	"catalogo-productos/logger"
	"catalogo-productos/models"
	"catalogo-productos/service"
)

// PreferenceController handles the theme and language toggles
type PreferenceController struct {
	preferenceService *service.PreferenceService
}

// NewPreferenceController creates a new PreferenceController
func NewPreferenceController(preferenceService *service.PreferenceService) *PreferenceController {
	return &PreferenceController{preferenceService: preferenceService}
}

// ToggleTheme handles POST /preferencias/tema
func (c *PreferenceController) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	prefs := c.preferenceService.ToggleTheme(newCookieStore(w, r))
	logger.Log.Debugf("🎨 Theme set to %s", prefs.Theme)
	http.Redirect(w, r, safeReturnPath(r.FormValue("volver")), http.StatusSeeOther)
}

// SetLocale handles POST /preferencias/idioma with idioma=es|en
func (c *PreferenceController) SetLocale(w http.ResponseWriter, r *http.Request) {
	locale, ok := models.ParseLocale(r.FormValue("idioma"))
	if !ok {
		http.Error(w, "idioma must be es or en", http.StatusBadRequest)
		return
	}
	c.preferenceService.SetLocale(newCookieStore(w, r), locale)
	http.Redirect(w, r, safeReturnPath(r.FormValue("volver")), http.StatusSeeOther)
}
