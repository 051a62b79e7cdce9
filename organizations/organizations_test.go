package organizations_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consolehq/go-console-client/organizations"
)

func TestNameByID(t *testing.T) {
	list := []organizations.Summary{
		{ID: "orgId1", Name: "Org One"},
		{ID: "orgId2", Name: "Org Two"},
	}

	require.Equal(t, "Org Two", organizations.NameByID(list, "orgId2"))
	require.Equal(t, "", organizations.NameByID(list, "orgId9"))
	require.Equal(t, "", organizations.NameByID(nil, "orgId1"))
}
