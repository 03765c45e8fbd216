package testutil

import (
	"net/http"
	"net/http/httptest"
)

// Get performs an in-process GET against the app's router.
func (app *TestApp) Get(path string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}
