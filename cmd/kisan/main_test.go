package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("GEMINI_APIKEY", "")
	t.Setenv("CONNECTIVITY_PROBE_ADDR", "127.0.0.1:1")

	var out bytes.Buffer
	err := newCLI(strings.NewReader(stdin), &out).RunContext(context.Background(), append([]string{"kisan"}, args...))
	require.NoError(t, err)
	return out.String()
}

func TestCLI_Catalog(t *testing.T) {
	out := runCLI(t, "", "catalog")

	for _, name := range []string{"Premium Wheat Seeds", "Nano Urea Fertilizer", "Fresh Potatoes", "Organic Red Tomatoes"} {
		assert.Contains(t, out, name)
	}
}

func TestCLI_Recommend_NoAssistant(t *testing.T) {
	out := runCLI(t, "", "recommend", "irrigation")
	assert.Contains(t, out, "no recommendations available")
}

func TestCLI_FileStorePersistsAcrossCommands(t *testing.T) {
	dir := t.TempDir()

	runCLI(t, "login guest\nadd p4\ncheckout\n", "--store", "file", "--store-path", dir, "shell")

	who := runCLI(t, "", "--store", "file", "--store-path", dir, "whoami")
	assert.Contains(t, who, "Guest (GUEST)")

	orders := runCLI(t, "", "--store", "file", "--store-path", dir, "orders")
	assert.Contains(t, orders, "SALE")
	assert.Contains(t, orders, "Rs 40.00")
}

func TestCLI_DefaultIsShell(t *testing.T) {
	out := runCLI(t, "help\n")
	assert.Contains(t, out, "commands:")
}
