package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gadgetfs/gadget-client/gadget"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	gpath := filepath.Join(root, "usb_gadget", "g1")
	assert.NoError(t, os.MkdirAll(filepath.Join(gpath, "functions", "acm.0"), 0o755))
	assert.NoError(t, os.MkdirAll(filepath.Join(gpath, "configs", "c.1"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(gpath, "UDC"), []byte("\n"), 0o644))
	assert.NoError(t, os.Symlink("../../functions/acm.0",
		filepath.Join(gpath, "configs", "c.1", "acm")))

	s, err := gadget.Init(root)
	assert.NoError(t, err)
	state = s

	router := gin.New()
	routes(router)

	return router
}

func doRequest(router *gin.Engine, method, url, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &envelope)

	return w.Code, envelope
}

func TestListGadgets(t *testing.T) {
	router := setupRouter(t)

	code, envelope := doRequest(router, http.MethodGet, "/gadgets", "")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, envelope["code"])

	data := envelope["data"].([]interface{})
	assert.Len(t, data, 1)

	summary := data[0].(map[string]interface{})
	assert.Equal(t, "g1", summary["name"])
	assert.Equal(t, []interface{}{"acm.0"}, summary["functions"])
	assert.Equal(t, []interface{}{"c.1"}, summary["configs"])
}

func TestGetGadgetNotFound(t *testing.T) {
	router := setupRouter(t)

	code, envelope := doRequest(router, http.MethodGet, "/gadgets/nope", "")
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, http.StatusNotFound, envelope["code"])
}

func TestCreateFunctionAPI(t *testing.T) {
	router := setupRouter(t)

	code, envelope := doRequest(router, http.MethodPost, "/gadgets/g1/functions",
		`{"type":"acm","instance":"1"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, envelope["code"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "acm.1", data["name"])

	// Duplicate creation surfaces the taxonomy kind.
	_, envelope = doRequest(router, http.MethodPost, "/gadgets/g1/functions",
		`{"type":"acm","instance":"1"}`)
	assert.NotEqualValues(t, 0, envelope["code"])
	assert.Equal(t, "Already exist", envelope["message"])
}

func TestCreateFunctionAPIUnknownType(t *testing.T) {
	router := setupRouter(t)

	_, envelope := doRequest(router, http.MethodPost, "/gadgets/g1/functions",
		`{"type":"midi","instance":"0"}`)
	assert.EqualValues(t, 1, envelope["code"])
}

func TestCreateConfigAPIValidation(t *testing.T) {
	router := setupRouter(t)

	// id out of range fails binding validation before any gadget work.
	_, envelope := doRequest(router, http.MethodPost, "/gadgets/g1/configs",
		`{"id":256}`)
	assert.EqualValues(t, 1, envelope["code"])
}

func TestBindingLifecycleAPI(t *testing.T) {
	router := setupRouter(t)

	code, envelope := doRequest(router, http.MethodPost, "/gadgets/g1/functions",
		`{"type":"acm","instance":"9"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, envelope["code"])

	_, envelope = doRequest(router, http.MethodPost, "/gadgets/g1/configs/c.1/bindings",
		`{"name":"extra","type":"acm","instance":"9"}`)
	assert.EqualValues(t, 0, envelope["code"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "extra", data["name"])
	assert.Equal(t, "acm.9", data["target"])

	_, envelope = doRequest(router, http.MethodDelete, "/gadgets/g1/configs/c.1/bindings/extra", "")
	assert.EqualValues(t, 0, envelope["code"])
}
