package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "object", raw: `{"id": 1}`},
		{name: "empty object", raw: `{}`},
		{name: "truncated", raw: `{"id": 1`, wantErr: ErrMalformedPayload},
		{name: "not json at all", raw: `<xml/>`, wantErr: ErrMalformedPayload},
		{name: "empty body", raw: ``, wantErr: ErrMalformedPayload},
		{name: "trailing garbage", raw: `{"id": 1} tail`, wantErr: ErrMalformedPayload},
		{name: "scalar string", raw: `"hello"`, wantErr: ErrInvalidPayload},
		{name: "scalar number", raw: `42`, wantErr: ErrInvalidPayload},
		{name: "null", raw: `null`, wantErr: ErrInvalidPayload},
		{name: "array", raw: `[1,2,3]`, wantErr: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePayload([]byte(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestManifestExtraction(t *testing.T) {
	t.Run("full shopify payload", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{
			"id": 123,
			"total_price": "19.99",
			"currency": "USD",
			"customer": {"email": "a@b.com", "first_name": "Ada"}
		}`))
		require.NoError(t, err)

		m := p.Manifest()
		require.NotNil(t, m.OrderID)
		assert.Equal(t, "123", *m.OrderID)
		require.NotNil(t, m.TotalPrice)
		assert.Equal(t, 19.99, *m.TotalPrice)
		require.NotNil(t, m.Currency)
		assert.Equal(t, "USD", *m.Currency)
		require.NotNil(t, m.Email)
		assert.Equal(t, "a@b.com", *m.Email)
	})

	t.Run("top-level email fallback", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{"id": 5, "email": "top@level.com"}`))
		require.NoError(t, err)

		m := p.Manifest()
		require.NotNil(t, m.Email)
		assert.Equal(t, "top@level.com", *m.Email)
	})

	t.Run("nested email wins over top-level", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{
			"email": "top@level.com",
			"customer": {"email": "nested@customer.com"}
		}`))
		require.NoError(t, err)

		m := p.Manifest()
		require.NotNil(t, m.Email)
		assert.Equal(t, "nested@customer.com", *m.Email)
	})

	t.Run("customer without email falls back", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{
			"email": "top@level.com",
			"customer": {"first_name": "Ada"}
		}`))
		require.NoError(t, err)

		m := p.Manifest()
		require.NotNil(t, m.Email)
		assert.Equal(t, "top@level.com", *m.Email)
	})

	t.Run("customer wrong type falls back", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{"customer": "gid://123", "email": "top@level.com"}`))
		require.NoError(t, err)

		m := p.Manifest()
		require.NotNil(t, m.Email)
		assert.Equal(t, "top@level.com", *m.Email)
	})

	t.Run("unparseable price degrades to null", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{"id": 7, "total_price": "not-a-number"}`))
		require.NoError(t, err)

		m := p.Manifest()
		require.NotNil(t, m.OrderID)
		assert.Equal(t, "7", *m.OrderID)
		assert.Nil(t, m.TotalPrice)
	})

	t.Run("numeric price used directly", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{"total_price": 42.5}`))
		require.NoError(t, err)

		m := p.Manifest()
		require.NotNil(t, m.TotalPrice)
		assert.Equal(t, 42.5, *m.TotalPrice)
	})

	t.Run("string order id kept verbatim", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{"id": "gid://shopify/Order/450789469"}`))
		require.NoError(t, err)

		m := p.Manifest()
		require.NotNil(t, m.OrderID)
		assert.Equal(t, "gid://shopify/Order/450789469", *m.OrderID)
	})

	t.Run("non-scalar fields are null", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{
			"id": true,
			"total_price": {"amount": "19.99"},
			"currency": 840
		}`))
		require.NoError(t, err)

		m := p.Manifest()
		assert.Nil(t, m.OrderID)
		assert.Nil(t, m.TotalPrice)
		assert.Nil(t, m.Currency)
		assert.Nil(t, m.Email)
	})

	t.Run("all fields absent", func(t *testing.T) {
		p, err := ParsePayload([]byte(`{"line_items": []}`))
		require.NoError(t, err)

		m := p.Manifest()
		assert.Nil(t, m.OrderID)
		assert.Nil(t, m.TotalPrice)
		assert.Nil(t, m.Currency)
		assert.Nil(t, m.Email)
	})
}
