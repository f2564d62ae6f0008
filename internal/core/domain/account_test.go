package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountType(t *testing.T) {
	cases := []struct {
		codeBase int
		want     AccountType
	}{
		{101, Asset},
		{152, Asset},
		{201, Liability},
		{301, Equity},
		{401, Revenue},
		{501, Expense},
		{999, Expense},
	}
	for _, tc := range cases {
		a := Account{CodeBase: tc.codeBase}
		assert.Equal(t, tc.want, a.Type(), "code base %d", tc.codeBase)
	}
}

func TestAccountNature(t *testing.T) {
	assert.Equal(t, Debit, Account{CodeBase: 152}.Nature(), "asset accounts are debit-natured")
	assert.Equal(t, Debit, Account{CodeBase: 530}.Nature(), "expense accounts are debit-natured")
	assert.Equal(t, Credit, Account{CodeBase: 210}.Nature(), "liability accounts are credit-natured")
	assert.Equal(t, Credit, Account{CodeBase: 400}.Nature(), "revenue accounts are credit-natured")
}

func TestAccountCode(t *testing.T) {
	assert.Equal(t, "152", Account{CodeBase: 152}.Code())
	assert.Equal(t, "152-2", Account{CodeBase: 152, CodeSeq: 2}.Code())
}

func TestParseAccountCode(t *testing.T) {
	base, seq, err := ParseAccountCode("152")
	assert.NoError(t, err)
	assert.Equal(t, 152, base)
	assert.Equal(t, 0, seq)

	base, seq, err = ParseAccountCode("152-2")
	assert.NoError(t, err)
	assert.Equal(t, 152, base)
	assert.Equal(t, 2, seq)

	for _, bad := range []string{"", "abc", "99", "1000", "152-0", "152-x", "152-"} {
		_, _, err := ParseAccountCode(bad)
		assert.Error(t, err, "code %q should be rejected", bad)
	}
}
