package elog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclaringType(t *testing.T) {
	cases := []struct {
		fn   string
		want string
	}{
		{"github.com/acme/shop.(*Cart).Add", "Cart"},
		{"github.com/acme/shop.Cart.Total", "Cart"},
		{"github.com/acme/shop.Cart.Total.func1", "Cart"},
		{"github.com/acme/shop.(*Cart).Add.func2.1", "Cart"},
		{"github.com/acme/shop.(*Store[...]).Get", "Store"},
		{"github.com/acme/shop.Pair[...].Left", "Pair"},
		{"github.com/acme/shop.checkout", "shop"},
		{"github.com/acme/shop.checkout.func2", "shop"},
		{"github.com/acme/shop.checkout.gowrap1", "shop"},
		{"github.com/acme/shop.Cart.Total-fm", "Cart"},
		{"github.com/acme/shop.init", "shop"},
		{"github.com/acme/shop.init.0", "shop"},
		{"github.com/acme/shop.init.func1", "shop"},
		{"github.com/acme/shop.glob..func1", "shop"},
		{"main.main", "main"},
		{"main.(*server).serve", "server"},
		{"", ""},
		{"nodot", ""},
	}
	for _, tc := range cases {
		t.Run(tc.fn, func(t *testing.T) {
			assert.Equal(t, tc.want, declaringType(tc.fn))
		})
	}
}

func TestIsClosureSegment(t *testing.T) {
	for _, s := range []string{"func1", "func12", "1", "gowrap3", "deferwrap1", "func1-fm"} {
		assert.True(t, isClosureSegment(s), s)
	}
	for _, s := range []string{"", "func", "Total", "Total-fm", "f1"} {
		assert.False(t, isClosureSegment(s), s)
	}
}

func TestCallSiteSkipsThisPackage(t *testing.T) {
	// The test function lives in this package, so the first foreign frame
	// is the test runner.
	assert.Equal(t, "testing.tRunner", callSite())
}
