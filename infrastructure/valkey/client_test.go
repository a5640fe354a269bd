package valkey

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Key(t *testing.T) {
	c := &Client{keyPrefix: "azrules:"}
	assert.Equal(t, "azrules:rules_config:ws1", c.Key("rules_config", "ws1"))
	assert.Equal(t, "azrules:idem", c.Key("idem"))
	assert.Equal(t, "azrules", c.Key())

	bare := &Client{}
	assert.Equal(t, "a:b", bare.Key("a", "b"))
}

func TestConnectedClient(t *testing.T) {
	c, err := NewClient(Config{Address: "localhost:6379", KeyPrefix: "azrules_test"})
	if err != nil {
		t.Skip("No valkey")
	}
	defer c.Close()

	assert.Equal(t, "azrules_test:", c.keyPrefix)
	assert.NoError(t, c.Ping(context.Background()))
}
