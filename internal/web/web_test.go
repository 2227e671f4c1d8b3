package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pets-catalog/internal/adapters/storage/memory"
	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
	"pets-catalog/internal/platform/logger"
)

type fixture struct {
	router http.Handler
	kinds  *kinds.Service
	pets   *pets.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := memory.NewStore()
	ks := kinds.NewService(store.Kinds())
	ps := pets.NewService(store.Pets())

	h, err := New(ks, ps, logger.Nop())
	require.NoError(t, err)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return fixture{router: r, kinds: ks, pets: ps}
}

func (f fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestPetPages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	dog, err := f.kinds.Create(ctx, kinds.CreateInput{Name: "dog", Food: "dogfood", Sound: "bark"})
	require.NoError(t, err)

	rec := f.do(http.MethodGet, "/create", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="`+dog.ID+`">dog</option>`)

	rec = f.do(http.MethodPost, "/create", url.Values{
		"name": {"dorothy"}, "age": {"nine"}, "owner": {"greg"}, "kind_id": {dog.ID},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/list", rec.Header().Get("Location"))

	list, err := f.pets.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Age, "edad inválida => 0")

	rec = f.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "dorothy")
	assert.Contains(t, body, "dogfood")
	assert.Contains(t, body, "bark")

	id := list[0].ID
	rec = f.do(http.MethodGet, "/update/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="dorothy"`)

	rec = f.do(http.MethodPost, "/update/"+id, url.Values{
		"name": {"dorothy"}, "age": {"9"}, "owner": {"greg"}, "kind_id": {dog.ID},
	})
	require.Equal(t, http.StatusFound, rec.Code)

	p, err := f.pets.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 9, p.Age)

	rec = f.do(http.MethodGet, "/delete/"+id, nil)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = f.do(http.MethodGet, "/update/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "pet not found")
}

func TestCreatePet_UnknownKindShowsError(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/create", url.Values{"name": {"ghost"}, "kind_id": {"nope"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown kind")
}

func TestKindPages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/kind/create", url.Values{"name": {"cat"}, "food": {"catfood"}, "sound": {"meow"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/kind/list", rec.Header().Get("Location"))

	ks, err := f.kinds.List(ctx)
	require.NoError(t, err)
	require.Len(t, ks, 1)
	cat := ks[0]

	rec = f.do(http.MethodGet, "/kind", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "meow")

	rec = f.do(http.MethodPost, "/kind/update/"+cat.ID, url.Values{"name": {"cat"}, "food": {"fish"}, "sound": {"purr"}})
	require.Equal(t, http.StatusFound, rec.Code)

	got, err := f.kinds.Get(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "purr", got.Sound)

	_, err = f.pets.Create(ctx, pets.CreateInput{Name: "casey", Age: 9, Owner: "greg", KindID: cat.ID})
	require.NoError(t, err)

	// con mascotas todavía apuntando al kind, el delete muestra la página de error
	rec = f.do(http.MethodGet, "/kind/delete/"+cat.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "pets still reference it")

	rec = f.do(http.MethodPost, "/kind/create", url.Values{"name": {"  "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
