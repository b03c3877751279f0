package terminals

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"station-reports/internal/constants"
	"station-reports/internal/storage"
)

func block(n int, shift storage.Shift, fields storage.Fields) storage.ShiftRecord {
	return storage.ShiftRecord{StationID: 1, Shift: shift, Block: n, Fields: fields}
}

func TestAggregate_SumsAndFirstNonEmpty(t *testing.T) {
	records := []storage.ShiftRecord{
		block(3, storage.ShiftTotal, storage.Fields{
			"vygr_ft":                   storage.Int(1),
			constants.FieldTerminalName: storage.Text("Третий"),
			constants.FieldPlanQuantity: storage.Int(30),
		}),
		block(1, storage.ShiftTotal, storage.Fields{
			"vygr_ft":                   storage.Int(2),
			constants.FieldTerminalName: storage.Text(""),
			constants.FieldPlanQuantity: storage.Int(0),
		}),
		block(2, storage.ShiftTotal, storage.Fields{
			"vygr_ft":                   storage.Int(4),
			"pogr_kr":                   storage.Int(5),
			constants.FieldTerminalName: storage.Text("Второй"),
			constants.FieldPlanQuantity: storage.Int(20),
		}),
	}

	out := Aggregate(records)

	assert.Equal(t, int64(7), out.Int("vygr_ft"))
	assert.Equal(t, int64(5), out.Int("pogr_kr"))
	// блок 1 пустой, побеждает блок 2
	assert.Equal(t, "Второй", out.Text(constants.FieldTerminalName))
	assert.Equal(t, int64(20), out.Int(constants.FieldPlanQuantity))
}

func TestAggregate_AllEmptyCommon(t *testing.T) {
	out := Aggregate([]storage.ShiftRecord{
		block(1, storage.ShiftTotal, storage.Fields{constants.FieldTerminalName: storage.Text("")}),
		block(2, storage.ShiftTotal, storage.Fields{constants.FieldTerminalName: storage.Text("")}),
	})

	assert.Equal(t, storage.Text(""), out[constants.FieldTerminalName])
}

func TestAggregate_ShuffleInvariant(t *testing.T) {
	records := []storage.ShiftRecord{
		block(1, storage.ShiftTotal, storage.Fields{"vygr_ft": storage.Int(1), constants.FieldTerminalName: storage.Text("A")}),
		block(2, storage.ShiftTotal, storage.Fields{"vygr_ft": storage.Int(10), "uborka": storage.Int(3), constants.FieldTerminalName: storage.Text("B")}),
		block(3, storage.ShiftTotal, storage.Fields{"vygr_ft": storage.Int(100), constants.FieldTerminalName: storage.Text("C")}),
		block(4, storage.ShiftTotal, storage.Fields{"spc_lc": storage.Int(-2)}),
	}
	want := Aggregate(records)

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]storage.ShiftRecord, len(records))
		copy(shuffled, records)
		rnd.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		assert.Equal(t, want, Aggregate(shuffled))
	}

	assert.Equal(t, "A", want.Text(constants.FieldTerminalName))
	assert.Equal(t, int64(111), want.Int("vygr_ft"))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestByShift_RecomputesSubtotals(t *testing.T) {
	records := []storage.ShiftRecord{
		// сохраненное ИТОГО устарело
		block(1, storage.ShiftDay, storage.Fields{"pogr_ft": storage.Int(5), "pogr_itogo": storage.Int(500)}),
		block(2, storage.ShiftDay, storage.Fields{"pogr_kr": storage.Int(3), "pogr_itogo": storage.Int(3)}),
		block(1, storage.ShiftNight, storage.Fields{"pogr_ft": storage.Int(2), "pogr_itogo": storage.Int(2)}),
		block(1, storage.ShiftTotal, storage.Fields{"pogr_ft": storage.Int(7), "pogr_kr": storage.Int(3), "pogr_itogo": storage.Int(0)}),
		// неизвестная смена не учитывается
		block(1, storage.Shift("evening"), storage.Fields{"pogr_ft": storage.Int(1000)}),
	}

	out := ByShift(records)

	assert.Equal(t, int64(8), out.Day.Int("pogr_itogo"))
	assert.Equal(t, int64(2), out.Night.Int("pogr_itogo"))
	assert.Equal(t, int64(10), out.Total.Int("pogr_itogo"))
	assert.Equal(t, int64(7), out.Total.Int("pogr_ft"))
}
