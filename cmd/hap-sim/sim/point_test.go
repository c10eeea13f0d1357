package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointGetSet(t *testing.T) {
	ctx := context.Background()
	p := NewPoint(10.0)

	v, err := p.Get().Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	_, err = p.Set(20).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, p.Value())
}

func TestPointFailure(t *testing.T) {
	ctx := context.Background()
	p := NewPoint(true)
	boom := errors.New("sensor offline")

	p.SetFailure(boom)
	_, err := p.Get().Await(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = p.Set(false).Await(ctx)
	assert.ErrorIs(t, err, boom)
	assert.True(t, p.Value(), "failed write must not change the value")

	p.SetFailure(nil)
	v, err := p.Get().Await(ctx)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestPointLatency(t *testing.T) {
	p := NewPoint(1)
	p.SetLatency(20 * time.Millisecond)

	f := p.Get()
	select {
	case <-f.Done():
		t.Fatal("read completed before latency elapsed")
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := f.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestPointEmit(t *testing.T) {
	p := NewPoint("a")
	var got []string

	p.Emit("b")
	assert.Empty(t, got)

	p.Subscribe(func(v string) { got = append(got, v) })
	assert.True(t, p.Subscribed())
	p.Emit("c")
	_, err := p.Set("d").Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, got)

	p.Unsubscribe()
	assert.False(t, p.Subscribed())
	p.Emit("e")
	assert.Equal(t, []string{"c", "d"}, got)
	assert.Equal(t, "e", p.Value())
}

func TestPointBindings(t *testing.T) {
	p := NewPoint(0)
	assert.Equal(t, "RWN", p.Binding().Access().String())
	assert.Equal(t, "RN", p.ReadBinding().Binding().Access().String())
}
