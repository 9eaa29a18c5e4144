package thresholds

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database"
	repo "github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database/thresholds"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/matryer/is"
)

func TestSentinelsAreDisabledBounds(t *testing.T) {
	is := is.New(t)

	th, err := FromWire(types.DisabledThreshold())
	is.NoErr(err)

	for _, b := range []Bound{th.Temperature.Lo, th.Temperature.Hi, th.Humidity.Lo, th.Humidity.Hi, th.Gas.Hi, th.Light.Lo, th.Light.Hi} {
		is.True(!b.Active())
	}

	is.Equal(ToWire(th), types.DisabledThreshold())
}

func TestWireConversionKeepsActiveBounds(t *testing.T) {
	is := is.New(t)

	w := types.DisabledThreshold()
	w.TempLo, w.TempHi = 18, 30
	w.GasHi = 400

	th, err := FromWire(w)
	is.NoErr(err)

	lo, ok := th.Temperature.Lo.Value()
	is.True(ok)
	is.Equal(lo, 18.0)

	hi, ok := th.Gas.Hi.Value()
	is.True(ok)
	is.Equal(hi, 400.0)

	is.True(!th.Humidity.Hi.Active())
	is.Equal(ToWire(th), w)
}

func TestThresholdValidation(t *testing.T) {
	is := is.New(t)

	tests := []struct {
		modify func(*types.Threshold)
		field  string
	}{
		{func(w *types.Threshold) { w.TempLo, w.TempHi = 30, 18 }, "temp_lo"},
		{func(w *types.Threshold) { w.HumHi = 150 }, "hum_hi"},
		{func(w *types.Threshold) { w.TempLo = -120 }, "temp_lo"},
		{func(w *types.Threshold) { w.GasHi = 2000 }, "gas_hi"},
		{func(w *types.Threshold) { w.LightLo, w.LightHi = 500, 200 }, "light_lo"},
	}

	for _, tc := range tests {
		w := types.DisabledThreshold()
		tc.modify(&w)

		_, err := FromWire(w)

		var vErr *ValidationError
		is.True(errors.As(err, &vErr))
		is.Equal(vErr.Field, tc.field)
	}
}

func TestOneSidedRangesAreValid(t *testing.T) {
	is := is.New(t)

	w := types.DisabledThreshold()
	w.TempLo = 40 // above a disabled hi is fine

	_, err := FromWire(w)
	is.NoErr(err)
}

func TestGetReturnsDisabledWhenNotConfigured(t *testing.T) {
	is, ctx, s := testSetupStore(t)

	th, err := s.Get(ctx, "12")
	is.NoErr(err)
	is.Equal(th, AllDisabled())
}

func TestSetThenGet(t *testing.T) {
	is, ctx, s := testSetupStore(t)

	th := Threshold{Temperature: Range{Lo: At(18), Hi: At(30)}}
	is.NoErr(s.Set(ctx, "12", th))

	got, err := s.Get(ctx, "12")
	is.NoErr(err)
	is.Equal(got, th)

	other, err := s.Get(ctx, "13")
	is.NoErr(err)
	is.Equal(other, AllDisabled())
}

func TestSetRejectsInvalidThreshold(t *testing.T) {
	is, ctx, s := testSetupStore(t)

	err := s.Set(ctx, "12", Threshold{Humidity: Range{Lo: At(80), Hi: At(20)}})

	var vErr *ValidationError
	is.True(errors.As(err, &vErr))

	got, err := s.Get(ctx, "12")
	is.NoErr(err)
	is.Equal(got, AllDisabled())
}

func TestStoredThresholdIsReadFromRepository(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	stored := repo.Threshold{
		WarehouseID: "12",
		TempLo:      types.TempDisabledLo,
		TempHi:      25,
		HumLo:       types.HumDisabledLo,
		HumHi:       types.HumDisabledHi,
		GasHi:       types.GasDisabledHi,
		LightLo:     types.LightDisabledLo,
		LightHi:     types.LightDisabledHi,
	}

	r := &repo.ThresholdRepositoryMock{
		GetFunc: func(ctx context.Context, warehouseID string) (repo.Threshold, error) {
			return stored, nil
		},
	}

	s := NewStore(r)

	th, err := s.Get(ctx, "12")
	is.NoErr(err)
	is.Equal(th.Temperature.Hi, At(25))

	_, err = s.Get(ctx, "12")
	is.NoErr(err)
	is.Equal(len(r.GetCalls()), 1) // second read is served from cache
}

func TestReadRacingAWriteDoesNotCacheStaleThreshold(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	stale := repo.Threshold{
		WarehouseID: "12",
		TempLo:      types.TempDisabledLo,
		TempHi:      25,
		HumLo:       types.HumDisabledLo,
		HumHi:       types.HumDisabledHi,
		GasHi:       types.GasDisabledHi,
		LightLo:     types.LightDisabledLo,
		LightHi:     types.LightDisabledHi,
	}

	reading := make(chan struct{})
	release := make(chan struct{})

	r := &repo.ThresholdRepositoryMock{
		GetFunc: func(ctx context.Context, warehouseID string) (repo.Threshold, error) {
			close(reading)
			<-release
			return stale, nil
		},
		SaveFunc: func(ctx context.Context, t repo.Threshold) error {
			return nil
		},
	}

	s := NewStore(r)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Get(ctx, "12")
	}()

	<-reading

	fresh := Threshold{Temperature: Range{Lo: At(18), Hi: At(30)}}
	is.NoErr(s.Set(ctx, "12", fresh))

	close(release)
	<-done

	got, err := s.Get(ctx, "12")
	is.NoErr(err)
	is.Equal(got, fresh)
	is.Equal(len(r.GetCalls()), 1)
}

func TestRepositoryFailuresArePropagated(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	failure := errors.New("db down")
	r := &repo.ThresholdRepositoryMock{
		GetFunc: func(ctx context.Context, warehouseID string) (repo.Threshold, error) {
			return repo.Threshold{}, failure
		},
		SaveFunc: func(ctx context.Context, t repo.Threshold) error {
			return failure
		},
	}

	s := NewStore(r)

	_, err := s.Get(ctx, "12")
	is.True(errors.Is(err, failure))

	err = s.Set(ctx, "12", AllDisabled())
	is.True(errors.Is(err, failure))
}

func testSetupStore(t *testing.T) (*is.I, context.Context, Store) {
	is := is.New(t)
	ctx := context.Background()

	r, err := repo.NewThresholdRepository(database.NewSQLiteConnector(ctx))
	is.NoErr(err)

	return is, ctx, NewStore(r)
}
