package jwk

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet(t *testing.T) Set {
	t.Helper()
	return Set{
		&ECKey{common: common{use: UseSignature, kid: "1"}, Curve: supportedCurves["P-256"], X: big.NewInt(1), Y: big.NewInt(2)},
		&RSAKey{common: common{use: UseSignature, kid: "2"}, N: big.NewInt(1), E: big.NewInt(2)},
		&OctetKey{common: common{kid: "3"}, Secret: []byte("s3cr3t")},
	}
}

func TestSet_JSONRoundTrip(t *testing.T) {
	set := testSet(t)

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var decoded Set
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)

	assert.Equal(t, KeyTypeEC, decoded[0].Type())
	assert.Equal(t, KeyTypeRSA, decoded[1].Type())
	assert.Equal(t, KeyTypeOct, decoded[2].Type())

	if diff := deep.Equal(set, decoded); diff != nil {
		t.Errorf("want\n%+v but got\n%+v\ndiff: %v", set, decoded, diff)
	}
}

func TestSet_HasAndFirst(t *testing.T) {
	set := testSet(t)

	assert.True(t, set.Has(WithID("2")))
	assert.False(t, set.Has(WithID("missing")))

	k := set.First(WithID("3"))
	require.NotNil(t, k)
	assert.Equal(t, KeyTypeOct, k.Type())
}

func TestSet_Iterator(t *testing.T) {
	set := testSet(t)
	it := set.Iterator()

	ctx := context.Background()
	var seen []KeyType
	for {
		k, ok, err := it.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		seen = append(seen, k.Type())
	}

	assert.Equal(t, []KeyType{KeyTypeEC, KeyTypeRSA, KeyTypeOct}, seen)
}

func TestStaticKeys_RespectsCancellation(t *testing.T) {
	it := StaticKeys(testSet(t)...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := it.Next(ctx)
	assert.False(t, ok)
	assert.Error(t, err)
}
