package game

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	bonussvc "empire-builder/internal/application/bonus"
	"empire-builder/internal/application/economy"
	"empire-builder/internal/application/saves"
	"empire-builder/internal/domain"
	"empire-builder/internal/infrastructure/database"
	"empire-builder/internal/infrastructure/store"
	"empire-builder/internal/middleware"
	"empire-builder/internal/pkg/clock"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
}

type gameTest struct {
	app    *fiber.App
	engine *economy.Engine
	store  *store.GormStore
}

func setupGameTest(t *testing.T, bonusBody string) *gameTest {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "game.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cat := domain.DefaultCatalog()
	gs := &store.GormStore{DB: db, Name: "empireBuilderSave"}
	svc := &saves.Service{Store: gs, Catalog: cat, Clock: clock.NewFakeClock(time.Unix(1_700_000_000, 0))}
	eng := economy.NewEngine(cat, svc.Load(context.Background()), svc)

	issuer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bonusBody))
	}))
	t.Cleanup(issuer.Close)

	h := &Handlers{
		Engine: eng,
		Bonus:  &bonussvc.Service{Gateway: &bonussvc.HTTPGateway{URL: issuer.URL}, Engine: eng},
	}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	g := app.Group("/api/v1/game")
	g.Get("/state", h.State)
	g.Post("/click", h.Click)
	g.Post("/buy", h.Buy)
	g.Get("/prestige", h.PrestigePreview)
	g.Post("/prestige", h.Prestige)
	g.Post("/bonus", h.ClaimBonus)
	g.Post("/save", h.Save)
	g.Delete("/save", h.Wipe)
	return &gameTest{app: app, engine: eng, store: gs}
}

func (gt *gameTest) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := gt.app.Test(req)
	require.NoError(t, err)
	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestState(t *testing.T) {
	gt := setupGameTest(t, `{}`)
	code, env := gt.do(t, "GET", "/api/v1/game/state", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, "success", env.Status)

	var v economy.View
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Len(t, v.Assets, 20)
	assert.Equal(t, 1.0, v.ClickValue)
	assert.Equal(t, 1.0, v.PrestigeMultiplier)
	assert.True(t, v.Assets[0].Unlocked)
	assert.False(t, v.Assets[1].Unlocked)
}

func TestClickAndBuyFlow(t *testing.T) {
	gt := setupGameTest(t, `{}`)

	code, env := gt.do(t, "POST", "/api/v1/game/click", "")
	require.Equal(t, 200, code)
	var click struct {
		ClickValue float64      `json:"click_value"`
		View       economy.View `json:"view"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &click))
	assert.Equal(t, 1.0, click.ClickValue)
	assert.Equal(t, 1.0, click.View.Wallet)

	var buy struct {
		Purchased bool         `json:"purchased"`
		View      economy.View `json:"view"`
	}
	code, env = gt.do(t, "POST", "/api/v1/game/buy", `{"asset_id":0}`)
	require.Equal(t, 200, code)
	require.NoError(t, json.Unmarshal(env.Data, &buy))
	assert.False(t, buy.Purchased)
	assert.Equal(t, 1.0, buy.View.Wallet)

	for i := 0; i < 14; i++ {
		gt.do(t, "POST", "/api/v1/game/click", "")
	}
	code, env = gt.do(t, "POST", "/api/v1/game/buy", `{"asset_id":0}`)
	require.Equal(t, 200, code)
	require.NoError(t, json.Unmarshal(env.Data, &buy))
	assert.True(t, buy.Purchased)
	assert.Equal(t, "Asset purchased", env.Message)
	assert.Equal(t, 0.0, buy.View.Wallet)
	assert.Equal(t, 18.0, buy.View.Assets[0].NextCost)
	assert.Equal(t, 1, buy.View.Assets[0].Owned)
	assert.True(t, buy.View.Assets[1].Unlocked)
}

func TestBuy_Malformed(t *testing.T) {
	gt := setupGameTest(t, `{}`)
	for _, body := range []string{`{}`, `{"asset_id":"zero"}`, `{"asset_id":1.5}`, `{"asset_id":-2}`, `not json`} {
		code, env := gt.do(t, "POST", "/api/v1/game/buy", body)
		assert.Equal(t, 400, code, body)
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, 400, env.Error.StatusCode)
	}
}

func TestBuy_UnknownAssetIsNoop(t *testing.T) {
	gt := setupGameTest(t, `{}`)
	gt.engine.Credit(1e9)
	code, env := gt.do(t, "POST", "/api/v1/game/buy", `{"asset_id":99}`)
	assert.Equal(t, 200, code)
	assert.Contains(t, string(env.Data), `"purchased":false`)
}

func TestPrestige(t *testing.T) {
	gt := setupGameTest(t, `{}`)

	_, env := gt.do(t, "GET", "/api/v1/game/prestige", "")
	assert.JSONEq(t, `{"gain":0,"available":false}`, string(env.Data))

	_, env = gt.do(t, "POST", "/api/v1/game/prestige", "")
	assert.Contains(t, string(env.Data), `"applied":false`)

	gt.engine.Credit(4_000_000)
	_, env = gt.do(t, "GET", "/api/v1/game/prestige", "")
	assert.JSONEq(t, `{"gain":2,"available":true}`, string(env.Data))

	code, env := gt.do(t, "POST", "/api/v1/game/prestige", "")
	require.Equal(t, 200, code)
	var res struct {
		Applied bool         `json:"applied"`
		Gain    float64      `json:"gain"`
		Saved   bool         `json:"saved"`
		View    economy.View `json:"view"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Applied)
	assert.True(t, res.Saved)
	assert.Equal(t, 3.0, res.View.PrestigeMultiplier)
	assert.Equal(t, 0.0, res.View.Wallet)

	// prestige writes through to the store
	raw, err := gt.store.Read(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"prestigeMultiplier":3`)
}

func TestClaimBonus_Granted(t *testing.T) {
	gt := setupGameTest(t, `{"message":"Bonus claimed","bonus":300,"timestamp":1}`)
	code, env := gt.do(t, "POST", "/api/v1/game/bonus", "")
	require.Equal(t, 200, code)
	var res struct {
		Granted bool         `json:"granted"`
		Bonus   float64      `json:"bonus"`
		Notice  string       `json:"notice"`
		View    economy.View `json:"view"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Granted)
	assert.Equal(t, 300.0, res.Bonus)
	assert.Equal(t, 300.0, res.View.Wallet)
	assert.Equal(t, 300.0, res.View.LifetimeEarned)
}

func TestClaimBonus_Notice(t *testing.T) {
	gt := setupGameTest(t, `{"message":"Come back tomorrow"}`)
	code, env := gt.do(t, "POST", "/api/v1/game/bonus", "")
	require.Equal(t, 200, code)
	assert.Equal(t, "Come back tomorrow", env.Message)
	assert.Contains(t, string(env.Data), `"granted":false`)
	assert.Equal(t, 0.0, gt.engine.State().Wallet)
}

func TestSaveAndWipe(t *testing.T) {
	gt := setupGameTest(t, `{}`)
	gt.engine.Credit(42)

	code, _ := gt.do(t, "POST", "/api/v1/game/save", "")
	require.Equal(t, 200, code)
	raw, err := gt.store.Read(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"money":42`)

	code, env := gt.do(t, "DELETE", "/api/v1/game/save", "")
	require.Equal(t, 200, code)
	var v economy.View
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, 0.0, v.Wallet)

	_, err = gt.store.Read(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
