package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	t.Run("duplicate key becomes invalid value", func(t *testing.T) {
		dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerr.UniqueViolation, Message: "duplicate key"})

		err := pgerr.Translate(dup, "sequence")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "sequence", invalid.ParamName)
	})

	t.Run("other driver errors pass through", func(t *testing.T) {
		fk := &pgconn.PgError{Code: "23503"}
		assert.Same(t, fk, pgerr.Translate(fk, "agentId"))
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Equal(t, plain, pgerr.Translate(plain, "id"))
		assert.NoError(t, pgerr.Translate(nil, "id"))
	})
}
