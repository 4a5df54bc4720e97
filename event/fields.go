package event

import (
	"strings"

	"github.com/lytics/nlfilter/value"
)

// FieldID identifies one member of the closed field catalog the filter
// language can reference. The catalog is versioned with the event schema:
// adding a field means adding an id here, a name below, and an arm in
// Extract, all of which the compiler checks for exhaustiveness.
type FieldID int

const (
	// generic metadata, present on every event
	FieldInterface FieldID = iota
	FieldMessageType
	FieldEventType
	FieldNamespace
	FieldTimestamp
	FieldSequence

	// netlink envelope
	FieldNlProtocol
	FieldNlMsgType
	FieldNlMsgFlags
	FieldNlSeq
	FieldNlPid
	FieldNlGenlCmd
	FieldNlGenlVersion
	FieldNlGenlFamilyID
	FieldNlGenlFamilyName

	// link
	FieldLinkIfName
	FieldLinkIfIndex
	FieldLinkFlags
	FieldLinkMTU
	FieldLinkOperState
	FieldLinkQdisc

	// address
	FieldAddrFamily
	FieldAddrIfIndex
	FieldAddrPrefixLen
	FieldAddrScope
	FieldAddrAddr
	FieldAddrLabel

	// route
	FieldRouteFamily
	FieldRouteDst
	FieldRouteSrc
	FieldRouteGateway
	FieldRouteOif
	FieldRouteProtocol
	FieldRouteScope
	FieldRouteType
	FieldRoutePriority

	// neighbor
	FieldNeighFamily
	FieldNeighIfIndex
	FieldNeighState
	FieldNeighDst

	// socket diagnostics
	FieldSockFamily
	FieldSockState
	FieldSockProtocol
	FieldSockSrcPort
	FieldSockDstPort
	FieldSockSrcAddr
	FieldSockDstAddr
	FieldSockUID
	FieldSockInode

	// connection tracking
	FieldCtProtocol
	FieldCtTCPState
	FieldCtSrcAddr
	FieldCtDstAddr
	FieldCtSrcPort
	FieldCtDstPort
	FieldCtMark

	// wireless
	FieldWifiCmd
	FieldWifiWiphy
	FieldWifiIfIndex
	FieldWifiIfName
	FieldWifiIfType
	FieldWifiFreq

	// vendor command
	FieldVendorSubCmd
	FieldVendorSubCmdName
	FieldVendorID
)

var fieldNames = map[FieldID]string{
	FieldInterface:   "interface",
	FieldMessageType: "message_type",
	FieldEventType:   "event_type",
	FieldNamespace:   "namespace",
	FieldTimestamp:   "timestamp",
	FieldSequence:    "sequence",

	FieldNlProtocol:       "nl_protocol",
	FieldNlMsgType:        "nl_msg_type",
	FieldNlMsgFlags:       "nl_msg_flags",
	FieldNlSeq:            "nl_seq",
	FieldNlPid:            "nl_pid",
	FieldNlGenlCmd:        "nl_genl_cmd",
	FieldNlGenlVersion:    "nl_genl_version",
	FieldNlGenlFamilyID:   "nl_genl_family_id",
	FieldNlGenlFamilyName: "nl_genl_family_name",

	FieldLinkIfName:    "link_ifname",
	FieldLinkIfIndex:   "link_ifindex",
	FieldLinkFlags:     "link_flags",
	FieldLinkMTU:       "link_mtu",
	FieldLinkOperState: "link_operstate",
	FieldLinkQdisc:     "link_qdisc",

	FieldAddrFamily:    "addr_family",
	FieldAddrIfIndex:   "addr_ifindex",
	FieldAddrPrefixLen: "addr_prefixlen",
	FieldAddrScope:     "addr_scope",
	FieldAddrAddr:      "addr_addr",
	FieldAddrLabel:     "addr_label",

	FieldRouteFamily:   "route_family",
	FieldRouteDst:      "route_dst",
	FieldRouteSrc:      "route_src",
	FieldRouteGateway:  "route_gateway",
	FieldRouteOif:      "route_oif",
	FieldRouteProtocol: "route_protocol",
	FieldRouteScope:    "route_scope",
	FieldRouteType:     "route_type",
	FieldRoutePriority: "route_priority",

	FieldNeighFamily:  "neigh_family",
	FieldNeighIfIndex: "neigh_ifindex",
	FieldNeighState:   "neigh_state",
	FieldNeighDst:     "neigh_dst",

	FieldSockFamily:   "sock_family",
	FieldSockState:    "sock_state",
	FieldSockProtocol: "sock_protocol",
	FieldSockSrcPort:  "sock_src_port",
	FieldSockDstPort:  "sock_dst_port",
	FieldSockSrcAddr:  "sock_src_addr",
	FieldSockDstAddr:  "sock_dst_addr",
	FieldSockUID:      "sock_uid",
	FieldSockInode:    "sock_inode",

	FieldCtProtocol: "ct_protocol",
	FieldCtTCPState: "ct_tcp_state",
	FieldCtSrcAddr:  "ct_src_addr",
	FieldCtDstAddr:  "ct_dst_addr",
	FieldCtSrcPort:  "ct_src_port",
	FieldCtDstPort:  "ct_dst_port",
	FieldCtMark:     "ct_mark",

	FieldWifiCmd:     "wifi_cmd",
	FieldWifiWiphy:   "wifi_wiphy",
	FieldWifiIfIndex: "wifi_ifindex",
	FieldWifiIfName:  "wifi_ifname",
	FieldWifiIfType:  "wifi_iftype",
	FieldWifiFreq:    "wifi_freq",

	FieldVendorSubCmd:     "vendor_subcmd",
	FieldVendorSubCmdName: "vendor_subcmd_name",
	FieldVendorID:         "vendor_id",
}

var fieldsByName map[string]FieldID

func init() {
	fieldsByName = make(map[string]FieldID, len(fieldNames))
	for id, name := range fieldNames {
		fieldsByName[name] = id
	}
}

func (f FieldID) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown_field"
}

// FieldByName maps an identifier to its catalog entry, case-insensitively.
func FieldByName(name string) (FieldID, bool) {
	id, ok := fieldsByName[strings.ToLower(name)]
	return id, ok
}

// FieldNames returns every catalog field name. The slice is freshly
// allocated; callers may sort or mutate it.
func FieldNames() []string {
	names := make([]string, 0, len(fieldNames))
	for _, name := range fieldNames {
		names = append(names, name)
	}
	return names
}

// Extract reads the field's current value from the event. The second
// return is false when the field is unavailable, ie the event does not
// carry the sub-structure the field belongs to. Absence is not an error;
// the evaluator folds it into "no match".
func Extract(ev *NetworkEvent, id FieldID) (value.Value, bool) {
	if ev == nil {
		return nil, false
	}
	switch id {
	case FieldInterface:
		return value.NewStringValue(ev.Interface), true
	case FieldMessageType:
		return value.NewIntValue(ev.MessageType), true
	case FieldEventType:
		return value.NewStringValue(ev.EventType), true
	case FieldNamespace:
		return value.NewStringValue(ev.Namespace), true
	case FieldTimestamp:
		return value.NewIntValue(ev.Timestamp), true
	case FieldSequence:
		return value.NewIntValue(ev.Sequence), true
	}

	switch id {
	case FieldNlProtocol, FieldNlMsgType, FieldNlMsgFlags, FieldNlSeq,
		FieldNlPid, FieldNlGenlCmd, FieldNlGenlVersion,
		FieldNlGenlFamilyID, FieldNlGenlFamilyName:
		return extractNetlink(ev.Netlink, id)
	case FieldLinkIfName, FieldLinkIfIndex, FieldLinkFlags, FieldLinkMTU,
		FieldLinkOperState, FieldLinkQdisc:
		return extractLink(ev.Link, id)
	case FieldAddrFamily, FieldAddrIfIndex, FieldAddrPrefixLen,
		FieldAddrScope, FieldAddrAddr, FieldAddrLabel:
		return extractAddr(ev.Addr, id)
	case FieldRouteFamily, FieldRouteDst, FieldRouteSrc, FieldRouteGateway,
		FieldRouteOif, FieldRouteProtocol, FieldRouteScope, FieldRouteType,
		FieldRoutePriority:
		return extractRoute(ev.Route, id)
	case FieldNeighFamily, FieldNeighIfIndex, FieldNeighState, FieldNeighDst:
		return extractNeigh(ev.Neigh, id)
	case FieldSockFamily, FieldSockState, FieldSockProtocol,
		FieldSockSrcPort, FieldSockDstPort, FieldSockSrcAddr,
		FieldSockDstAddr, FieldSockUID, FieldSockInode:
		return extractSock(ev.Sock, id)
	case FieldCtProtocol, FieldCtTCPState, FieldCtSrcAddr, FieldCtDstAddr,
		FieldCtSrcPort, FieldCtDstPort, FieldCtMark:
		return extractConntrack(ev.Conntrack, id)
	case FieldWifiCmd, FieldWifiWiphy, FieldWifiIfIndex, FieldWifiIfName,
		FieldWifiIfType, FieldWifiFreq:
		return extractWireless(ev.Wireless, id)
	case FieldVendorSubCmd, FieldVendorSubCmdName, FieldVendorID:
		return extractVendor(ev.Vendor, id)
	}
	return nil, false
}

func extractNetlink(nl *NetlinkMeta, id FieldID) (value.Value, bool) {
	if nl == nil {
		return nil, false
	}
	switch id {
	case FieldNlProtocol:
		return value.NewIntValue(nl.Protocol), true
	case FieldNlMsgType:
		return value.NewIntValue(nl.MsgType), true
	case FieldNlMsgFlags:
		return value.NewIntValue(nl.MsgFlags), true
	case FieldNlSeq:
		return value.NewIntValue(nl.Seq), true
	case FieldNlPid:
		return value.NewIntValue(nl.Pid), true
	case FieldNlGenlCmd:
		return value.NewIntValue(nl.GenlCmd), true
	case FieldNlGenlVersion:
		return value.NewIntValue(nl.GenlVersion), true
	case FieldNlGenlFamilyID:
		return value.NewIntValue(nl.GenlFamilyID), true
	case FieldNlGenlFamilyName:
		return value.NewStringValue(nl.GenlFamilyName), true
	}
	return nil, false
}

func extractLink(l *LinkAttrs, id FieldID) (value.Value, bool) {
	if l == nil {
		return nil, false
	}
	switch id {
	case FieldLinkIfName:
		return value.NewStringValue(l.IfName), true
	case FieldLinkIfIndex:
		return value.NewIntValue(l.IfIndex), true
	case FieldLinkFlags:
		return value.NewIntValue(l.Flags), true
	case FieldLinkMTU:
		return value.NewIntValue(l.MTU), true
	case FieldLinkOperState:
		return value.NewStringValue(l.OperState), true
	case FieldLinkQdisc:
		return value.NewStringValue(l.Qdisc), true
	}
	return nil, false
}

func extractAddr(a *AddrAttrs, id FieldID) (value.Value, bool) {
	if a == nil {
		return nil, false
	}
	switch id {
	case FieldAddrFamily:
		return value.NewIntValue(a.Family), true
	case FieldAddrIfIndex:
		return value.NewIntValue(a.IfIndex), true
	case FieldAddrPrefixLen:
		return value.NewIntValue(a.PrefixLen), true
	case FieldAddrScope:
		return value.NewIntValue(a.Scope), true
	case FieldAddrAddr:
		return value.NewStringValue(a.Addr), true
	case FieldAddrLabel:
		return value.NewStringValue(a.Label), true
	}
	return nil, false
}

func extractRoute(r *RouteAttrs, id FieldID) (value.Value, bool) {
	if r == nil {
		return nil, false
	}
	switch id {
	case FieldRouteFamily:
		return value.NewIntValue(r.Family), true
	case FieldRouteDst:
		return value.NewStringValue(r.Dst), true
	case FieldRouteSrc:
		return value.NewStringValue(r.Src), true
	case FieldRouteGateway:
		return value.NewStringValue(r.Gateway), true
	case FieldRouteOif:
		return value.NewIntValue(r.Oif), true
	case FieldRouteProtocol:
		return value.NewIntValue(r.Protocol), true
	case FieldRouteScope:
		return value.NewIntValue(r.Scope), true
	case FieldRouteType:
		return value.NewIntValue(r.Type), true
	case FieldRoutePriority:
		return value.NewIntValue(r.Priority), true
	}
	return nil, false
}

func extractNeigh(n *NeighAttrs, id FieldID) (value.Value, bool) {
	if n == nil {
		return nil, false
	}
	switch id {
	case FieldNeighFamily:
		return value.NewIntValue(n.Family), true
	case FieldNeighIfIndex:
		return value.NewIntValue(n.IfIndex), true
	case FieldNeighState:
		return value.NewIntValue(n.State), true
	case FieldNeighDst:
		return value.NewStringValue(n.Dst), true
	}
	return nil, false
}

func extractSock(s *SockAttrs, id FieldID) (value.Value, bool) {
	if s == nil {
		return nil, false
	}
	switch id {
	case FieldSockFamily:
		return value.NewIntValue(s.Family), true
	case FieldSockState:
		return value.NewStringValue(s.State), true
	case FieldSockProtocol:
		return value.NewIntValue(s.Protocol), true
	case FieldSockSrcPort:
		return value.NewIntValue(s.SrcPort), true
	case FieldSockDstPort:
		return value.NewIntValue(s.DstPort), true
	case FieldSockSrcAddr:
		return value.NewStringValue(s.SrcAddr), true
	case FieldSockDstAddr:
		return value.NewStringValue(s.DstAddr), true
	case FieldSockUID:
		return value.NewIntValue(s.UID), true
	case FieldSockInode:
		return value.NewIntValue(s.Inode), true
	}
	return nil, false
}

func extractConntrack(ct *ConntrackAttrs, id FieldID) (value.Value, bool) {
	if ct == nil {
		return nil, false
	}
	switch id {
	case FieldCtProtocol:
		return value.NewIntValue(ct.Protocol), true
	case FieldCtTCPState:
		return value.NewStringValue(ct.TCPState), true
	case FieldCtSrcAddr:
		return value.NewStringValue(ct.SrcAddr), true
	case FieldCtDstAddr:
		return value.NewStringValue(ct.DstAddr), true
	case FieldCtSrcPort:
		return value.NewIntValue(ct.SrcPort), true
	case FieldCtDstPort:
		return value.NewIntValue(ct.DstPort), true
	case FieldCtMark:
		return value.NewIntValue(ct.Mark), true
	}
	return nil, false
}

func extractWireless(w *WirelessAttrs, id FieldID) (value.Value, bool) {
	if w == nil {
		return nil, false
	}
	switch id {
	case FieldWifiCmd:
		return value.NewIntValue(w.Cmd), true
	case FieldWifiWiphy:
		return value.NewIntValue(w.Wiphy), true
	case FieldWifiIfIndex:
		return value.NewIntValue(w.IfIndex), true
	case FieldWifiIfName:
		return value.NewStringValue(w.IfName), true
	case FieldWifiIfType:
		return value.NewStringValue(w.IfType), true
	case FieldWifiFreq:
		return value.NewIntValue(w.Freq), true
	}
	return nil, false
}

func extractVendor(v *VendorAttrs, id FieldID) (value.Value, bool) {
	if v == nil {
		return nil, false
	}
	switch id {
	case FieldVendorSubCmd:
		return value.NewIntValue(v.SubCmd), true
	case FieldVendorSubCmdName:
		return value.NewStringValue(v.SubCmdName), true
	case FieldVendorID:
		return value.NewIntValue(v.VendorID), true
	}
	return nil, false
}
