// Package event defines the network event record the filter language
// evaluates against: generic metadata shared by every event plus one
// optional protocol-specific sub-structure, populated by the netlink
// decoders upstream of this package.
package event

// NetworkEvent is one decoded kernel networking notification. The generic
// fields are always set; at most the sub-structures relevant to the
// event's protocol are non-nil. Filters read it, never mutate it.
type NetworkEvent struct {
	Interface   string `json:"interface"`
	MessageType int64  `json:"message_type"`
	EventType   string `json:"event_type"`
	Namespace   string `json:"namespace"`
	Timestamp   int64  `json:"timestamp"` // nanoseconds since epoch
	Sequence    int64  `json:"sequence"`

	Netlink   *NetlinkMeta    `json:"netlink,omitempty"`
	Link      *LinkAttrs      `json:"link,omitempty"`
	Addr      *AddrAttrs      `json:"addr,omitempty"`
	Route     *RouteAttrs     `json:"route,omitempty"`
	Neigh     *NeighAttrs     `json:"neigh,omitempty"`
	Sock      *SockAttrs      `json:"sock,omitempty"`
	Conntrack *ConntrackAttrs `json:"conntrack,omitempty"`
	Wireless  *WirelessAttrs  `json:"wireless,omitempty"`
	Vendor    *VendorAttrs    `json:"vendor,omitempty"`
}

// NetlinkMeta carries the raw netlink/genetlink envelope of the message
// that produced the event.
type NetlinkMeta struct {
	Protocol       int64  `json:"protocol"`
	MsgType        int64  `json:"msg_type"`
	MsgFlags       int64  `json:"msg_flags"`
	Seq            int64  `json:"seq"`
	Pid            int64  `json:"pid"`
	GenlCmd        int64  `json:"genl_cmd"`
	GenlVersion    int64  `json:"genl_version"`
	GenlFamilyID   int64  `json:"genl_family_id"`
	GenlFamilyName string `json:"genl_family_name"`
}

// LinkAttrs is present for RTM_NEWLINK/RTM_DELLINK events.
type LinkAttrs struct {
	IfName    string `json:"ifname"`
	IfIndex   int64  `json:"ifindex"`
	Flags     int64  `json:"flags"`
	MTU       int64  `json:"mtu"`
	OperState string `json:"operstate"`
	Qdisc     string `json:"qdisc"`
}

// AddrAttrs is present for RTM_NEWADDR/RTM_DELADDR events.
type AddrAttrs struct {
	Family    int64  `json:"family"`
	IfIndex   int64  `json:"ifindex"`
	PrefixLen int64  `json:"prefixlen"`
	Scope     int64  `json:"scope"`
	Addr      string `json:"addr"`
	Label     string `json:"label"`
}

// RouteAttrs is present for RTM_NEWROUTE/RTM_DELROUTE events.
type RouteAttrs struct {
	Family   int64  `json:"family"`
	Dst      string `json:"dst"`
	Src      string `json:"src"`
	Gateway  string `json:"gateway"`
	Oif      int64  `json:"oif"`
	Protocol int64  `json:"protocol"`
	Scope    int64  `json:"scope"`
	Type     int64  `json:"type"`
	Priority int64  `json:"priority"`
}

// NeighAttrs is present for RTM_NEWNEIGH/RTM_DELNEIGH events.
type NeighAttrs struct {
	Family  int64  `json:"family"`
	IfIndex int64  `json:"ifindex"`
	State   int64  `json:"state"`
	Dst     string `json:"dst"`
}

// SockAttrs is present for sock_diag events.
type SockAttrs struct {
	Family   int64  `json:"family"`
	State    string `json:"state"`
	Protocol int64  `json:"protocol"`
	SrcPort  int64  `json:"src_port"`
	DstPort  int64  `json:"dst_port"`
	SrcAddr  string `json:"src_addr"`
	DstAddr  string `json:"dst_addr"`
	UID      int64  `json:"uid"`
	Inode    int64  `json:"inode"`
}

// ConntrackAttrs is present for nf_conntrack events.
type ConntrackAttrs struct {
	Protocol int64  `json:"protocol"`
	TCPState string `json:"tcp_state"`
	SrcAddr  string `json:"src_addr"`
	DstAddr  string `json:"dst_addr"`
	SrcPort  int64  `json:"src_port"`
	DstPort  int64  `json:"dst_port"`
	Mark     int64  `json:"mark"`
}

// WirelessAttrs is present for nl80211 wireless-driver events.
type WirelessAttrs struct {
	Cmd     int64  `json:"cmd"`
	Wiphy   int64  `json:"wiphy"`
	IfIndex int64  `json:"ifindex"`
	IfName  string `json:"ifname"`
	IfType  string `json:"iftype"`
	Freq    int64  `json:"freq"`
}

// VendorAttrs is present for nl80211 vendor-command events.
type VendorAttrs struct {
	SubCmd     int64  `json:"subcmd"`
	SubCmdName string `json:"subcmd_name"`
	VendorID   int64  `json:"vendor_id"`
}
