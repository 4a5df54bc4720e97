package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lytics/nlfilter/event"
	"github.com/lytics/nlfilter/filter"
	"github.com/lytics/nlfilter/vm"
)

func linkEvent(iface string, msgType int64) *event.NetworkEvent {
	return &event.NetworkEvent{
		Interface:   iface,
		MessageType: msgType,
		EventType:   "new_link",
		Link:        &event.LinkAttrs{IfName: iface, MTU: 1500, OperState: "up"},
	}
}

func TestValidate(t *testing.T) {
	valid := []string{
		`interface == "eth0"`,
		`message_type IN [16, 17]`,
		`NOT (interface == "lo") AND link_mtu >= 1500`,
	}
	invalid := []string{
		``,
		`interface ==`,
		`interface == "eth0" AND`,
		`(interface == "eth0"`,
	}
	// every string Validate accepts, Parse accepts; every string it
	// rejects, Parse rejects with a positioned error
	for _, text := range valid {
		assert.Equal(t, nil, filter.Validate(text), text)
		assert.True(t, filter.Parse(text).Valid, text)
	}
	for _, text := range invalid {
		err := filter.Validate(text)
		assert.NotEqual(t, nil, err, text)
		exp := filter.Parse(text)
		assert.False(t, exp.Valid, text)
		assert.NotEmpty(t, exp.Err.Message, text)
		assert.True(t, exp.Err.Offset >= 0 && exp.Err.Offset <= len(text), text)
	}
}

func TestCompileAndMatch(t *testing.T) {
	f, err := filter.Compile(`interface == "eth0" AND message_type == 16`)
	assert.Equal(t, nil, err)
	assert.True(t, f.Matches(linkEvent("eth0", 16), nil))
	assert.False(t, f.Matches(linkEvent("eth1", 16), nil))
	assert.False(t, f.Matches(linkEvent("eth0", 17), nil))

	_, err = filter.Compile(`interface ==`)
	assert.NotEqual(t, nil, err)
}

func TestCompileReusableAcrossContexts(t *testing.T) {
	f := filter.MustCompile(`link_ifname =~ "eth.*"`)
	ctx := vm.NewContext()
	for i := 0; i < 3; i++ {
		assert.True(t, f.Matches(linkEvent("eth0", 16), ctx))
	}
	matched, elapsed := f.MatchesProfiled(linkEvent("eth2", 16), ctx)
	assert.True(t, matched)
	assert.True(t, elapsed >= 0)
	assert.Equal(t, int64(1), ctx.Profile.Evaluations)
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { filter.MustCompile(`interface ==`) })
}

func TestFilterDisassemble(t *testing.T) {
	f := filter.MustCompile(`interface == "eth0"`)
	assert.Contains(t, f.Disassemble(), "push-field")
	assert.Equal(t, `interface == "eth0"`, f.String())
}
