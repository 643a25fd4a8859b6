package listing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in    string
		minor int64
		ok    bool
	}{
		{"75000", 7_500_000, true},
		{"75,000.50", 7_500_050, true},
		{"KES 1,250,000", 125_000_000, true},
		{"KSh 1 250 000.00", 125_000_000, true},
		{"  12.5 ", 1_250, true},
		{"12.999", 1_299, true},
		{"-300", -30_000, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12a", 0, false},
		{".5", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseMoney(tc.in)
		if !tc.ok {
			require.Error(t, err, tc.in)
			require.False(t, m.Valid(), tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.True(t, m.Valid(), tc.in)
		require.Equal(t, tc.minor, m.Minor(), tc.in)
	}
}

func TestMoneyFormat(t *testing.T) {
	require.Equal(t, "KES 1,250,000", NewMoney(1_250_000).Format(DefaultCurrency))
	require.Equal(t, "KES 999", NewMoney(999).Format(DefaultCurrency))
	require.Equal(t, "1,000.05", MoneyFromMinor(100_005).Format(""))
	require.Equal(t, "KES 0", NewMoney(0).Format(DefaultCurrency))
	require.Equal(t, "", Money{}.Format(DefaultCurrency))
	require.Equal(t, "75000.00", NewMoney(75_000).String())
}

func TestMoneyJSON(t *testing.T) {
	var doc struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
		D Money `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": 75000, "b": "75000.00", "c": "not a price", "d": null}`), &doc)
	require.NoError(t, err)
	require.Equal(t, NewMoney(75_000), doc.A)
	require.Equal(t, NewMoney(75_000), doc.B)
	require.False(t, doc.C.Valid())
	require.False(t, doc.D.Valid())

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":75000,"b":75000,"c":null,"d":null}`, string(out))
}

func TestMoneyScanAndValue(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("150000.00")))
	require.Equal(t, NewMoney(150_000), m)

	require.NoError(t, m.Scan(nil))
	require.False(t, m.Valid())

	require.Error(t, m.Scan(true))

	v, err := NewMoney(42).Value()
	require.NoError(t, err)
	require.Equal(t, "42.00", v)

	v, err = Money{}.Value()
	require.NoError(t, err)
	require.Nil(t, v)
}
