package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSplitIDs(t *testing.T) {
	assert.Nil(t, splitIDs(""))
	assert.Equal(t, []string{"cus_1"}, splitIDs("cus_1"))
	assert.Equal(t, []string{"cus_1", "cus_2"}, splitIDs("cus_1,cus_2"))
	assert.Equal(t, []string{"cus_1", "cus_2"}, splitIDs(" cus_1 , cus_2 "))
	assert.Equal(t, []string{"cus_1"}, splitIDs("cus_1,,"))
}

func TestCommandsRequireAccountKeys(t *testing.T) {
	log := zap.NewNop().Sugar()
	for _, name := range []string{"webhooks", "products", "plans", "coupons", "subscriptions"} {
		root := newRootCommand(log)
		root.SetArgs([]string{name})
		err := root.Execute()
		require.Error(t, err, name)
		assert.EqualError(t, err, "<from> argument is required", name)

		root = newRootCommand(log)
		root.SetArgs([]string{name, "--from", "sk_test_old"})
		err = root.Execute()
		require.Error(t, err, name)
		assert.EqualError(t, err, "<to> argument is required", name)
	}
}

func TestCancelCommandRequiresKey(t *testing.T) {
	root := newRootCommand(zap.NewNop().Sugar())
	root.SetArgs([]string{"cancel-subscriptions"})
	err := root.Execute()
	require.Error(t, err)
	assert.EqualError(t, err, "<key> argument is required")
}
