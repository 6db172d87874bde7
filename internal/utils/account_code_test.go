package utils_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiced-app/invoice_backend/internal/utils"
)

func TestGenerateAccountCode_Length(t *testing.T) {
	for _, digits := range []int{1, 5, 15} {
		for i := 0; i < 50; i++ {
			code, err := utils.GenerateAccountCode(digits)
			require.NoError(t, err)
			assert.Len(t, code, digits)

			n, err := strconv.ParseInt(code, 10, 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, int64(0))
			if digits > 1 {
				assert.NotEqual(t, byte('0'), code[0], "no leading zero")
			}
		}
	}
}

func TestGenerateAccountCode_InvalidDigits(t *testing.T) {
	for _, digits := range []int{0, -1, 16} {
		_, err := utils.GenerateAccountCode(digits)
		assert.Error(t, err, "digits=%d", digits)
	}
}
