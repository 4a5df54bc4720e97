package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lytics/nlfilter/value"
)

func TestFieldByName(t *testing.T) {
	id, ok := FieldByName("interface")
	assert.True(t, ok)
	assert.Equal(t, FieldInterface, id)

	// case-insensitive
	id, ok = FieldByName("LINK_IFNAME")
	assert.True(t, ok)
	assert.Equal(t, FieldLinkIfName, id)

	_, ok = FieldByName("bogus_field")
	assert.False(t, ok)
}

func TestFieldNamesCatalog(t *testing.T) {
	names := FieldNames()
	assert.Len(t, names, len(fieldNames))
	seen := map[string]bool{}
	for _, name := range names {
		assert.False(t, seen[name], "duplicate field name %s", name)
		seen[name] = true
		id, ok := FieldByName(name)
		assert.True(t, ok)
		assert.Equal(t, name, id.String())
	}
}

func TestExtractGeneric(t *testing.T) {
	ev := &NetworkEvent{
		Interface:   "eth0",
		MessageType: 16,
		EventType:   "new_link",
		Namespace:   "default",
		Timestamp:   1234567890,
		Sequence:    42,
	}
	v, ok := Extract(ev, FieldInterface)
	assert.True(t, ok)
	assert.Equal(t, value.NewStringValue("eth0"), v)
	v, ok = Extract(ev, FieldMessageType)
	assert.True(t, ok)
	assert.Equal(t, value.NewIntValue(16), v)
	v, ok = Extract(ev, FieldSequence)
	assert.True(t, ok)
	assert.Equal(t, value.NewIntValue(42), v)
}

func TestExtractAbsentSubStructure(t *testing.T) {
	ev := &NetworkEvent{Interface: "eth0"}
	// link fields are absent unless the event carries link data
	_, ok := Extract(ev, FieldLinkIfName)
	assert.False(t, ok)
	_, ok = Extract(ev, FieldCtMark)
	assert.False(t, ok)
	_, ok = Extract(ev, FieldWifiFreq)
	assert.False(t, ok)

	ev.Link = &LinkAttrs{IfName: "eth0", MTU: 1500, OperState: "up"}
	v, ok := Extract(ev, FieldLinkIfName)
	assert.True(t, ok)
	assert.Equal(t, value.NewStringValue("eth0"), v)
	v, ok = Extract(ev, FieldLinkMTU)
	assert.True(t, ok)
	assert.Equal(t, value.NewIntValue(1500), v)
}

func TestExtractPerFamily(t *testing.T) {
	ev := &NetworkEvent{
		Netlink:   &NetlinkMeta{Protocol: 0, MsgType: 16, GenlFamilyName: "nl80211"},
		Addr:      &AddrAttrs{Family: 2, PrefixLen: 24, Addr: "192.168.1.10"},
		Route:     &RouteAttrs{Dst: "10.0.0.0/8", Gateway: "192.168.1.1", Priority: 100},
		Neigh:     &NeighAttrs{State: 2, Dst: "192.168.1.1"},
		Sock:      &SockAttrs{State: "ESTAB", SrcPort: 443, UID: 1000},
		Conntrack: &ConntrackAttrs{TCPState: "ESTABLISHED", Mark: 7},
		Wireless:  &WirelessAttrs{Wiphy: 0, IfType: "station", Freq: 5180},
		Vendor:    &VendorAttrs{SubCmd: 3, SubCmdName: "set_power", VendorID: 4980},
	}
	cases := []struct {
		field FieldID
		want  value.Value
	}{
		{FieldNlMsgType, value.NewIntValue(16)},
		{FieldNlGenlFamilyName, value.NewStringValue("nl80211")},
		{FieldAddrPrefixLen, value.NewIntValue(24)},
		{FieldAddrAddr, value.NewStringValue("192.168.1.10")},
		{FieldRouteGateway, value.NewStringValue("192.168.1.1")},
		{FieldRoutePriority, value.NewIntValue(100)},
		{FieldNeighState, value.NewIntValue(2)},
		{FieldSockState, value.NewStringValue("ESTAB")},
		{FieldSockSrcPort, value.NewIntValue(443)},
		{FieldCtTCPState, value.NewStringValue("ESTABLISHED")},
		{FieldCtMark, value.NewIntValue(7)},
		{FieldWifiIfType, value.NewStringValue("station")},
		{FieldWifiFreq, value.NewIntValue(5180)},
		{FieldVendorSubCmdName, value.NewStringValue("set_power")},
		{FieldVendorID, value.NewIntValue(4980)},
	}
	for _, tc := range cases {
		v, ok := Extract(ev, tc.field)
		assert.True(t, ok, "field %s", tc.field)
		assert.Equal(t, tc.want, v, "field %s", tc.field)
	}
}

func TestExtractNilEvent(t *testing.T) {
	_, ok := Extract(nil, FieldInterface)
	assert.False(t, ok)
}
