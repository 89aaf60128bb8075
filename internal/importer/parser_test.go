package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/cost"
)

func TestParseARSAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1.234,56", want: "1234.56"},
		{in: "$ 350.000", want: "350000"},
		{in: "45000", want: "45000"},
		{in: "-588,74", want: "-588.74"},
		{in: "1234.5", want: "1234.5"},
		{in: "1.500", want: "1500"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseARSAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}

	_, err := parseARSAmount("abc")
	assert.Error(t, err)
}

func TestParser_Parse(t *testing.T) {
	t.Run("SpanishWithTitleRows", func(t *testing.T) {
		in := "Costos marzo;;;\n" +
			";;;\n" +
			"Nombre;Monto ARS;Tipo;Observación\n" +
			"Alquiler oficina;350.000,00;Fijo;\n" +
			"Hosting;45.000;variable;anual prorrateado\n" +
			";;;\n" +
			"Total;395.000,00;;\n"

		rows, err := NewParser().Parse(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Alquiler oficina", rows[0].Name)
		assert.True(t, decimal.NewFromInt(350000).Equal(rows[0].AmountARS))
		assert.Equal(t, cost.TypeFixed, rows[0].Type)
		assert.Empty(t, rows[0].Note)

		assert.Equal(t, cost.TypeVariable, rows[1].Type)
		assert.Equal(t, "anual prorrateado", rows[1].Note)
	})

	t.Run("EnglishWithoutNote", func(t *testing.T) {
		in := "Type;Name;Amount ARS\nfixed;Accounting;120000\n"

		rows, err := NewParser().Parse(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Accounting", rows[0].Name)
		assert.Equal(t, cost.TypeFixed, rows[0].Type)
	})

	t.Run("Empty", func(t *testing.T) {
		rows, err := NewParser().Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	errTests := []struct {
		name string
		in   string
		msg  string
	}{
		{name: "NoHeader", in: "a;b;c\n1;2;3\n", msg: "no cost header"},
		{name: "MissingName", in: "Nombre;Monto ARS;Tipo\n;1.000;Fijo\n", msg: "row 2: missing name"},
		{name: "BadAmount", in: "Nombre;Monto ARS;Tipo\nLuz;mucho;Fijo\n", msg: "row 2: invalid amount"},
		{name: "NegativeAmount", in: "Nombre;Monto ARS;Tipo\nLuz;-10;Fijo\n", msg: "row 2: negative amount"},
		{name: "UnknownType", in: "Nombre;Monto ARS;Tipo\nLuz;10;Anual\n", msg: "row 2: unknown type"},
	}

	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
