package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallbackIsDeterministic(t *testing.T) {
	b, err := NewCallbackBuilder("https://shop.example.com")
	require.NoError(t, err)

	first := b.Callback("google")
	second := b.Callback("google")

	require.Equal(t, first, second)
	require.Equal(t, "https://shop.example.com/sociallogin/endpoint/index?provider=google", first)
}

func TestCallbackForcesHTTPS(t *testing.T) {
	b, err := NewCallbackBuilder("http://shop.example.com")
	require.NoError(t, err)

	require.Equal(t,
		"https://shop.example.com/sociallogin/endpoint/index?provider=facebook",
		b.Callback("facebook"),
	)
}

func TestCallbackTrimsTrailingSlash(t *testing.T) {
	b, err := NewCallbackBuilder("https://shop.example.com/")
	require.NoError(t, err)

	require.Equal(t,
		"https://shop.example.com/sociallogin/endpoint/index?provider=windowslive",
		b.Callback("windowslive"),
	)
}
