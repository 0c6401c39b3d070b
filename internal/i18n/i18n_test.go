package i18n_test

import (
	"testing"

	"github.com/softnova/crm-console/internal/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	require.Equal(t, language.Spanish, i18n.Match())
	require.Equal(t, language.Spanish, i18n.Match("", "fr"))
	require.Equal(t, language.English, i18n.Match("en-GB,en;q=0.8"))
	require.Equal(t, language.Spanish, i18n.Match("es-MX"))
	require.Equal(t, language.English, i18n.Match("bogus!!", "en"))
}

func TestPrinter(t *testing.T) {
	es := i18n.Printer(language.Spanish)
	require.Equal(t, "Contactado", es.Sprintf(i18n.StatusContacted))
	require.Equal(t, "El lead ahora está marcado como contactado", es.Sprintf(i18n.MsgStatusUpdated, "contactado"))

	en := i18n.Printer(language.English)
	require.Equal(t, "Invalid credentials", en.Sprintf(i18n.MsgInvalidCredentials))
}
