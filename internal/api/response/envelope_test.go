package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccessRoundTrip(t *testing.T) {
	env := NewSuccess(map[string]any{"id": "p1"})

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded struct {
		Success bool           `json:"success"`
		Message *string        `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Success)
	assert.Nil(t, decoded.Message)
	assert.Equal(t, "p1", decoded.Data["id"])
}

func TestNewErrorOmitsData(t *testing.T) {
	raw, err := json.Marshal(NewError("Provider not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Provider not found"}`, string(raw))
}

func TestWriters(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return Success(c, []int{1, 2}) })
	app.Post("/created", func(c *fiber.Ctx) error { return Created(c, fiber.Map{"id": "x"}) })
	app.Get("/missing", func(c *fiber.Ctx) error { return Error(c, http.StatusNotFound, "Project not found") })
	app.Post("/msg", func(c *fiber.Ctx) error { return Message(c, "Logged out") })

	cases := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodGet, "/ok", http.StatusOK, `{"success":true,"data":[1,2]}`},
		{http.MethodPost, "/created", http.StatusCreated, `{"success":true,"data":{"id":"x"}}`},
		{http.MethodGet, "/missing", http.StatusNotFound, `{"success":false,"message":"Project not found"}`},
		{http.MethodPost, "/msg", http.StatusOK, `{"success":true,"message":"Logged out"}`},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		var got json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.JSONEq(t, tc.body, string(got), tc.path)
	}
}
