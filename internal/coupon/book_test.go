package coupon

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"masala-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCouponBookFile(t *testing.T, coupons []model.Coupon) string {
	t.Helper()

	data, err := json.Marshal(coupons)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "coupons.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestNewBook_Success(t *testing.T) {
	path := writeCouponBookFile(t, []model.Coupon{
		{Code: "WELCOME20", Active: true, Type: model.CouponTypePercent, Discount: 20},
		{Code: "FLAT100", Active: true, Type: model.CouponTypeFlat, Discount: 100},
	})

	book, err := NewBook(context.Background(), &BookConfig{FilePath: path}, NewFileLoader(zerolog.Nop()), zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 2, book.Size())

	c, ok := book.Lookup("WELCOME20")
	require.True(t, ok)
	assert.Equal(t, model.CouponTypePercent, c.Type)
	assert.Equal(t, 20, c.Discount)
}

func TestNewBook_MissingFile(t *testing.T) {
	book, err := NewBook(context.Background(), &BookConfig{FilePath: "/nonexistent/coupons.json"}, NewFileLoader(zerolog.Nop()), zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, book)
	assert.Contains(t, err.Error(), "failed to load coupon book")
}

func TestNewBook_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coupons.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewBook(context.Background(), &BookConfig{FilePath: path}, NewFileLoader(zerolog.Nop()), zerolog.Nop())

	require.Error(t, err)
}

func TestBook_LookupIsCaseInsensitive(t *testing.T) {
	book := NewStaticBook([]model.Coupon{
		{Code: "Welcome20", Active: true, Type: model.CouponTypePercent, Discount: 20},
	}, zerolog.Nop())

	_, ok := book.Lookup("welcome20")
	assert.True(t, ok)

	_, ok = book.Lookup(" WELCOME20 ")
	assert.True(t, ok)

	_, ok = book.Lookup("NOPE")
	assert.False(t, ok)
}

func TestBook_LookupReturnsCopy(t *testing.T) {
	book := NewStaticBook([]model.Coupon{
		{Code: "WELCOME20", Active: true, Type: model.CouponTypePercent, Discount: 20},
	}, zerolog.Nop())

	first, ok := book.Lookup("WELCOME20")
	require.True(t, ok)
	first.Discount = 99

	second, ok := book.Lookup("WELCOME20")
	require.True(t, ok)
	assert.Equal(t, 20, second.Discount)
}

func TestBook_RecordUse(t *testing.T) {
	book := NewStaticBook([]model.Coupon{
		{Code: "FLAT100", Active: true, Type: model.CouponTypeFlat, Discount: 100},
	}, zerolog.Nop())

	book.RecordUse("FLAT100")
	book.RecordUse("flat100")
	book.RecordUse("UNKNOWN") // ignored

	c, ok := book.Lookup("FLAT100")
	require.True(t, ok)
	assert.Equal(t, 2, c.UsedCount)
}

func TestFallbackLoader_UsesFileWhenS3Disabled(t *testing.T) {
	path := writeCouponBookFile(t, []model.Coupon{
		{Code: "WELCOME20", Active: true, Type: model.CouponTypePercent, Discount: 20},
	})

	loader := NewFallbackLoader(nil, NewFileLoader(zerolog.Nop()), "coupons/", false, zerolog.Nop())

	coupons, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, coupons, 1)
}

// stubLoader returns canned results for fallback tests.
type stubLoader struct {
	coupons []model.Coupon
	err     error
	calls   int
	lastKey string
}

func (s *stubLoader) Load(ctx context.Context, path string) ([]model.Coupon, error) {
	s.calls++
	s.lastKey = path
	return s.coupons, s.err
}

func TestFallbackLoader_PrefersS3(t *testing.T) {
	s3 := &stubLoader{coupons: []model.Coupon{{Code: "FROMS3", Active: true, Type: model.CouponTypeFlat, Discount: 50}}}
	file := &stubLoader{}

	loader := NewFallbackLoader(s3, file, "coupons/", true, zerolog.Nop())

	coupons, err := loader.Load(context.Background(), "coupons.json")
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "FROMS3", coupons[0].Code)
	assert.Equal(t, "coupons/coupons.json", s3.lastKey)
	assert.Equal(t, 0, file.calls)
}

func TestFallbackLoader_FallsBackOnS3Error(t *testing.T) {
	s3 := &stubLoader{err: assert.AnError}
	file := &stubLoader{coupons: []model.Coupon{{Code: "FROMFILE", Active: true, Type: model.CouponTypeFlat, Discount: 50}}}

	loader := NewFallbackLoader(s3, file, "coupons/", true, zerolog.Nop())

	coupons, err := loader.Load(context.Background(), "coupons.json")
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "FROMFILE", coupons[0].Code)
	assert.Equal(t, 1, s3.calls)
}
