package repo

import (
	"context"
	"errors"
	"testing"

	"CreditScoreZ/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCiphertextRepository_SaveAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewCiphertextRepository(db)
	ctx := context.Background()

	c := &model.DevCiphertext{Handle: "0xaa", Nonce: []byte{1, 2}, Cipher: []byte{3, 4}, AAD: []byte{5}}
	require.NoError(t, r.SaveCiphertext(ctx, c))
	// повтор не ошибка и не перезаписывает
	require.NoError(t, r.SaveCiphertext(ctx, &model.DevCiphertext{Handle: "0xaa", Nonce: []byte{9}, Cipher: []byte{9}}))

	got, err := r.GetCiphertext(ctx, "0xaa")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got.Nonce)
	assert.Equal(t, []byte{3, 4}, got.Cipher)
	assert.Equal(t, []byte{5}, got.AAD)

	_, err = r.GetCiphertext(ctx, "0xbb")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
