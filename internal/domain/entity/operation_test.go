package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del número de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatReference_ConstruyePrefijoYRelleno(t *testing.T) {
	cases := []struct {
		operationType string
		id            int64
		want          string
	}{
		{entity.OperationTypeReceipt, 42, "REC-000042"},
		{entity.OperationTypeDelivery, 1, "DEL-000001"},
		{entity.OperationTypeTransfer, 999999, "TRA-999999"},
		{entity.OperationTypeAdjustment, 7, "ADJ-000007"},
		// IDs más largos que 6 dígitos no se truncan
		{entity.OperationTypeReceipt, 1234567, "REC-1234567"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, entity.FormatReference(tc.operationType, tc.id),
			"referencia para %s con id %d", tc.operationType, tc.id)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_TablaGenerica(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.StatusDraft, entity.StatusWaiting, true},
		{entity.StatusDraft, entity.StatusCanceled, true},
		{entity.StatusWaiting, entity.StatusReady, true},
		{entity.StatusWaiting, entity.StatusCanceled, true},
		{entity.StatusReady, entity.StatusDone, true},
		{entity.StatusReady, entity.StatusCanceled, true},
		// Saltos no permitidos por la tabla genérica
		{entity.StatusDraft, entity.StatusReady, false},
		{entity.StatusDraft, entity.StatusDone, false},
		{entity.StatusWaiting, entity.StatusDone, false},
		// Los terminales no salen a ningún lado
		{entity.StatusDone, entity.StatusDraft, false},
		{entity.StatusDone, entity.StatusCanceled, false},
		{entity.StatusCanceled, entity.StatusDraft, false},
		// Retrocesos
		{entity.StatusReady, entity.StatusWaiting, false},
		{entity.StatusWaiting, entity.StatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, entity.CanTransition(tc.from, tc.to),
			"transición %s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, entity.IsTerminalStatus(entity.StatusDone))
	assert.True(t, entity.IsTerminalStatus(entity.StatusCanceled))
	assert.False(t, entity.IsTerminalStatus(entity.StatusDraft))
	assert.False(t, entity.IsTerminalStatus(entity.StatusWaiting))
	assert.False(t, entity.IsTerminalStatus(entity.StatusReady))
}

func TestValidOperationType(t *testing.T) {
	assert.True(t, entity.ValidOperationType(entity.OperationTypeReceipt))
	assert.True(t, entity.ValidOperationType(entity.OperationTypeDelivery))
	assert.True(t, entity.ValidOperationType(entity.OperationTypeTransfer))
	assert.True(t, entity.ValidOperationType(entity.OperationTypeAdjustment))
	assert.False(t, entity.ValidOperationType("PURCHASE"))
	assert.False(t, entity.ValidOperationType(""))
	assert.False(t, entity.ValidOperationType("receipt"), "los tipos son sensibles a mayúsculas")
}
