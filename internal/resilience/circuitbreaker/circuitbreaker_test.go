package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

func testConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          20 * time.Millisecond,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestNew_StartsClosed(t *testing.T) {
	cb := New(testConfig("start"))

	assert.Equal(t, "start", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
	assert.Equal(t, float64(gobreaker.StateClosed), testutil.ToFloat64(stateGauge.WithLabelValues("start")))
}

func TestReadyToTrip(t *testing.T) {
	trip := readyToTrip(Config{FailureThreshold: 0.6, MinRequests: 5})

	tests := []struct {
		name   string
		counts gobreaker.Counts
		want   bool
	}{
		{name: "no requests", counts: gobreaker.Counts{}, want: false},
		{name: "below minimum", counts: gobreaker.Counts{Requests: 4, TotalFailures: 4}, want: false},
		{name: "below ratio", counts: gobreaker.Counts{Requests: 10, TotalFailures: 5}, want: false},
		{name: "at ratio", counts: gobreaker.Counts{Requests: 5, TotalFailures: 3}, want: true},
		{name: "all failing", counts: gobreaker.Counts{Requests: 8, TotalFailures: 8}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trip(tt.counts))
		})
	}
}

func TestRun_TripsAndRejects(t *testing.T) {
	cb := New(testConfig("trips"))
	tripsBefore := testutil.ToFloat64(tripsTotal.WithLabelValues("trips"))

	require.ErrorIs(t, cb.Run(func() error { return errBackend }), errBackend)
	assert.Equal(t, gobreaker.StateClosed, cb.State(), "one failure is below MinRequests")
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)

	require.ErrorIs(t, cb.Run(func() error { return errBackend }), errBackend)
	assert.True(t, cb.IsOpen())
	assert.Equal(t, tripsBefore+1, testutil.ToFloat64(tripsTotal.WithLabelValues("trips")))
	assert.Equal(t, float64(gobreaker.StateOpen), testutil.ToFloat64(stateGauge.WithLabelValues("trips")))

	called := false
	err := cb.Run(func() error { called = true; return nil })
	assert.False(t, called)
	assert.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Contains(t, err.Error(), "trips")
}

func TestRun_HalfOpenProbe(t *testing.T) {
	cb := New(testConfig("probe"))
	for i := 0; i < 2; i++ {
		_ = cb.Run(func() error { return errBackend })
	}
	require.True(t, cb.IsOpen())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, gobreaker.StateHalfOpen, cb.State())

	require.NoError(t, cb.Run(func() error { return nil }))
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestRun_HalfOpenQuotaExhausted(t *testing.T) {
	cb := New(testConfig("quota"))
	for i := 0; i < 2; i++ {
		_ = cb.Run(func() error { return errBackend })
	}
	time.Sleep(30 * time.Millisecond)

	release := make(chan struct{})
	probing := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- cb.Run(func() error {
			close(probing)
			<-release
			return nil
		})
	}()
	<-probing

	err := cb.Run(func() error { return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, gobreaker.ErrTooManyRequests)

	close(release)
	require.NoError(t, <-done)
}

func TestRun_IsSuccessful(t *testing.T) {
	errNotFound := errors.New("not found")
	cfg := testConfig("classified")
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, errNotFound) }
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, cb.Run(func() error { return errNotFound }), errNotFound)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, uint32(0), cb.Counts().TotalFailures)
}

func TestDo(t *testing.T) {
	cb := New(testConfig("typed"))

	got, err := Do(cb, func() ([]string, error) { return []string{"org-1"}, nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"org-1"}, got)

	got, err = Do(cb, func() ([]string, error) { return nil, errBackend })
	assert.ErrorIs(t, err, errBackend)
	assert.Nil(t, got)
}

func TestPresetConfigs(t *testing.T) {
	tests := []struct {
		cfg      Config
		wantName string
	}{
		{cfg: DefaultConfig("custom"), wantName: "custom"},
		{cfg: FHIRAPIConfig(), wantName: "fhir-api"},
		{cfg: SettingsAPIConfig(), wantName: "settings-api"},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.cfg.Name)
			assert.Positive(t, tt.cfg.MaxRequests)
			assert.Positive(t, tt.cfg.MinRequests)
			assert.Positive(t, tt.cfg.Timeout)
			assert.Greater(t, tt.cfg.FailureThreshold, 0.0)
			assert.LessOrEqual(t, tt.cfg.FailureThreshold, 1.0)
		})
	}
	assert.Less(t, FHIRAPIConfig().Timeout, DefaultConfig("x").Timeout)
}
