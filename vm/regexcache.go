package vm

import "regexp"

// regexEntry is one regex-cache slot. A pattern that failed to compile
// occupies a permanently invalid slot so the failure is not retried on
// every evaluation.
type regexEntry struct {
	re  *regexp.Regexp
	bad bool
}

// regexFor returns the compiled form of pattern, keyed by its text,
// compiling at most once per context. Returns nil for a pattern that
// does not compile.
func (c *Context) regexFor(pattern string) *regexp.Regexp {
	if c.regexCache == nil {
		c.regexCache = make(map[string]*regexEntry)
	}
	if e, ok := c.regexCache[pattern]; ok {
		if e.bad {
			return nil
		}
		return e.re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		c.regexCache[pattern] = &regexEntry{bad: true}
		return nil
	}
	c.regexCache[pattern] = &regexEntry{re: re}
	return re
}

// RegexCacheSize returns the number of cached patterns, valid or not.
func (c *Context) RegexCacheSize() int {
	return len(c.regexCache)
}
