package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lytics/nlfilter/event"
	"github.com/lytics/nlfilter/expr"
)

func parseTest(t *testing.T, text string) *expr.Expression {
	exp := expr.Parse(text)
	assert.True(t, exp.Valid, "must parse: %s  \n\t%v", text, exp.Err)
	assert.NotNil(t, exp.Root)
	return exp
}

func parseError(t *testing.T, text string) *expr.Expression {
	exp := expr.Parse(text)
	assert.False(t, exp.Valid, "must error on parse: %s", text)
	assert.NotNil(t, exp.Err)
	assert.NotEmpty(t, exp.Err.Message)
	assert.True(t, exp.Err.Offset >= 0 && exp.Err.Offset <= len(text),
		"error position %d outside [0,%d] for %s", exp.Err.Offset, len(text), text)
	return exp
}

func TestParser(t *testing.T) {
	parseTest(t, `interface == "eth0"`)
	parseTest(t, `interface =~ "eth.*"`)
	parseTest(t, `interface == "eth0" AND message_type == 16`)
	parseTest(t, `NOT (interface == "lo")`)
	parseTest(t, `message_type IN [16, 17]`)
	parseTest(t, `link_mtu >= 1500 OR link_operstate != "up"`)
	parseTest(t, `NOT NOT interface == "lo"`)
	parseTest(t, `timestamp > 0 AND sequence <= 100 AND namespace == "default"`)
	parseTest(t, `ct_tcp_state IN ["ESTABLISHED", "TIME_WAIT"]`)
	parseTest(t, `(interface == "eth0" OR interface == "eth1") AND nl_msg_type == 16`)
	parseTest(t, `interface IN []`)
	parseTest(t, `"eth0" == interface`)
	parseTest(t, `16`)

	parseError(t, ``)
	parseError(t, `interface ==`)
	parseError(t, `== "eth0"`)
	parseError(t, `interface == "eth0" AND`)
	parseError(t, `(interface == "eth0"`)
	parseError(t, `interface == "eth0")`)
	parseError(t, `message_type IN [16,`)
	parseError(t, `message_type IN [16 17]`)
	parseError(t, `interface @ "eth0"`)
	parseError(t, `interface == == "eth0"`)
	parseError(t, `AND interface == "eth0"`)
	// comparisons do not chain
	parseError(t, `1 < 2 < 3`)
	// number too large for int64
	parseError(t, `message_type == 99999999999999999999`)
}

func TestParseErrorPosition(t *testing.T) {
	exp := parseError(t, `interface ==`)
	// reported at end of input
	assert.Equal(t, len(`interface ==`), exp.Err.Offset)
	assert.Equal(t, 1, exp.Err.Line)

	exp = parseError(t, "interface ==\n&& 5")
	assert.Equal(t, 2, exp.Err.Line)
	assert.Equal(t, 1, exp.Err.Column)
}

func TestParsePrecedence(t *testing.T) {
	// AND binds tighter than OR
	exp := parseTest(t, `interface == "a" OR interface == "b" AND message_type == 16`)
	root, ok := exp.Root.(*expr.BooleanNode)
	assert.True(t, ok)
	assert.Equal(t, "OR", root.Op.String())
	_, ok = root.Right.(*expr.BooleanNode)
	assert.True(t, ok, "right side of OR should be the AND")

	// left-associative at each level
	exp = parseTest(t, `timestamp > 0 AND sequence > 0 AND link_mtu > 0`)
	root, ok = exp.Root.(*expr.BooleanNode)
	assert.True(t, ok)
	_, ok = root.Left.(*expr.BooleanNode)
	assert.True(t, ok, "chained AND should nest on the left")

	// NOT binds tighter than AND
	exp = parseTest(t, `NOT interface == "lo" AND message_type == 16`)
	root, ok = exp.Root.(*expr.BooleanNode)
	assert.True(t, ok)
	_, ok = root.Left.(*expr.UnaryNode)
	assert.True(t, ok)
}

func TestParseFieldResolution(t *testing.T) {
	exp := parseTest(t, `LINK_IFNAME == "eth0"`)
	cmp := exp.Root.(*expr.ComparisonNode)
	ident := cmp.Left.(*expr.IdentityNode)
	assert.Equal(t, event.FieldLinkIfName, ident.Field)
	assert.Equal(t, "LINK_IFNAME", ident.Text)
}

// An unrecognized field name is accepted and silently resolves to the
// first catalog entry (interface). Surprising, but long-standing behavior
// that downstream filter sets may depend on; arguably it should be a
// parse error.
func TestParseUnknownFieldDefaultsToInterface(t *testing.T) {
	exp := parseTest(t, `bogus_field == 1`)
	cmp := exp.Root.(*expr.ComparisonNode)
	ident := cmp.Left.(*expr.IdentityNode)
	assert.Equal(t, event.FieldInterface, ident.Field)
	assert.Equal(t, "bogus_field", ident.Text)
}

func TestParseUnterminatedStringAccepted(t *testing.T) {
	// the lexer yields the text read so far for a missing closing quote,
	// so the expression still parses
	exp := parseTest(t, `interface == "eth0`)
	cmp := exp.Root.(*expr.ComparisonNode)
	s := cmp.Right.(*expr.StringNode)
	assert.Equal(t, "eth0", s.Text)
}

func TestParseFirstErrorOnly(t *testing.T) {
	exp := parseError(t, `interface @@ $$ ==`)
	assert.Equal(t, 10, exp.Err.Offset, "should report the first error")
}

func TestExpressionString(t *testing.T) {
	exp := parseTest(t, `message_type IN [16, 17]`)
	assert.Equal(t, `message_type IN [16, 17]`, exp.Root.String())

	exp = parseTest(t, `NOT (interface == "lo")`)
	assert.Equal(t, `NOT interface == "lo"`, exp.Root.String())

	// reparse of String() yields the same tree shape
	again := parseTest(t, exp.Root.String())
	assert.Equal(t, exp.Root.String(), again.Root.String())
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { expr.MustParse(`interface == "eth0"`) })
	assert.Panics(t, func() { expr.MustParse(`interface ==`) })
}
