package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	prof, err := Resolve("icici")
	require.NoError(t, err)
	assert.Equal(t, "icici", prof.Name)
	assert.Equal(t, AmountSplit, prof.Mode)
	assert.Equal(t, 4, prof.DebitCol)
	assert.Equal(t, 3, prof.CreditCol)
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("hdfc")
	require.ErrorIs(t, err, ErrUnknownProfile)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"icici", "icicicc", "icicixls"}, Names())
}

func TestRegistryIsComplete(t *testing.T) {
	for _, name := range Names() {
		prof, err := Resolve(name)
		require.NoError(t, err)

		assert.NotEmpty(t, prof.Account, "profile %s missing account", name)
		assert.NotEmpty(t, prof.Bank, "profile %s missing bank", name)
		assert.NotEmpty(t, prof.HeaderPrefix, "profile %s missing header sentinel", name)
		assert.NotEmpty(t, prof.DateFormat, "profile %s missing date format", name)
		assert.NotEmpty(t, prof.QIFDateFormat, "profile %s missing qif date format", name)
		assert.NotEmpty(t, prof.MemoCols, "profile %s missing memo columns", name)

		if prof.PasswordRequired {
			assert.NotNil(t, prof.PDFLine, "profile %s requires a password but has no pdf layout", name)
		}
	}
}

func TestCreditCardPDFPattern(t *testing.T) {
	prof, err := Resolve("icicicc")
	require.NoError(t, err)

	m := prof.PDFLine.FindStringSubmatch("14/07/2017 74143617199000258114409 SOME MERCHANT 20,724.06 CR")
	require.NotNil(t, m)
	assert.Equal(t, "14/07/2017", m[1])
	assert.Equal(t, "74143617199000258114409 SOME MERCHANT", m[2])
	assert.Equal(t, "20,724.06", m[3])
	assert.Equal(t, "CR", m[4])

	assert.Nil(t, prof.PDFLine.FindStringSubmatch("Total Amount Due 21,078.62"))
	assert.Nil(t, prof.PDFLine.FindStringSubmatch("Page 1 of 2"))
}
