package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestBuildUpdate(t *testing.T) {
	t.Run("empty patch builds nothing", func(t *testing.T) {
		set, args := buildUpdate(UpdatePatch{})
		assert.Empty(t, set)
		assert.Empty(t, args)
	})

	t.Run("only supplied fields appear, params numbered in order", func(t *testing.T) {
		price := int64(199)
		stock := 7
		set, args := buildUpdate(UpdatePatch{
			Name:       strPtr("Tent"),
			PriceCents: &price,
			Stock:      &stock,
		})
		require.Equal(t, []string{"name=$1", "price_cents=$2", "stock=$3"}, set)
		require.Equal(t, []any{"Tent", int64(199), 7}, args)
	})

	t.Run("event fields map to their columns", func(t *testing.T) {
		set, _ := buildUpdate(UpdatePatch{
			Location:  strPtr("Hall B"),
			Capacity:  intPtr(80),
			StartTime: strPtr("19:00"),
		})
		assert.Equal(t, []string{"location=$1", "capacity=$2", "start_time=$3"}, set)
	})
}

func TestCreateInputValidate(t *testing.T) {
	valid := CreateInput{Kind: KindProduct, Name: "Tent", PriceCents: 4999, Stock: 3}

	t.Run("valid product", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("rejections", func(t *testing.T) {
		cases := map[string]func(in *CreateInput){
			"bad kind":       func(in *CreateInput) { in.Kind = "bundle" },
			"empty name":     func(in *CreateInput) { in.Name = "" },
			"zero price":     func(in *CreateInput) { in.PriceCents = 0 },
			"negative stock": func(in *CreateInput) { in.Stock = -1 },
			"zero capacity":  func(in *CreateInput) { in.Capacity = intPtr(0) },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				in := valid
				mutate(&in)
				assert.ErrorIs(t, in.Validate(), ErrInvalidInput)
			})
		}
	})
}

func TestUpdatePatchValidate(t *testing.T) {
	t.Run("empty patch is fine", func(t *testing.T) {
		require.NoError(t, UpdatePatch{}.Validate())
	})

	t.Run("supplied fields are checked", func(t *testing.T) {
		bad := Kind("bundle")
		assert.ErrorIs(t, UpdatePatch{Kind: &bad}.Validate(), ErrInvalidInput)

		zero := int64(0)
		assert.ErrorIs(t, UpdatePatch{PriceCents: &zero}.Validate(), ErrInvalidInput)

		empty := ""
		assert.ErrorIs(t, UpdatePatch{Name: &empty}.Validate(), ErrInvalidInput)
	})
}
