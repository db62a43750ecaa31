/*
Package wildcard implements the shell-style name matching used to filter
files during a scan.

Patterns support two metacharacters: '?' matches exactly one character and
'*' matches any run of characters, including none. There is no escaping
mechanism, and a match always covers the whole name, never a substring.

	wildcard.Match("report.txt", "*.txt", true)  // true
	wildcard.Match("a.txt", "?.???", true)       // true
	wildcard.Match("a.txt", "?.??", true)        // false
*/
package wildcard

// Match reports whether name matches pattern in its entirety. An empty
// pattern or the literal pattern "*" matches any name. When caseSensitive
// is false, ASCII letters compare case-insensitively.
//
// The scan is greedy with a single live backtrack checkpoint: each '*'
// records the pattern position just past it together with the current name
// position, and a later mismatch re-enters at the checkpoint with the star
// consuming one more character.
func Match(name, pattern string, caseSensitive bool) bool {
	if pattern == "" || pattern == "*" {
		return true
	}

	n := []rune(name)
	p := []rune(pattern)

	var ni, pi int
	starPat := -1 // pattern position just past the most recent '*'
	starName := 0 // name position that '*' is currently bound to

	for ni < len(n) {
		switch {
		case pi < len(p) && (p[pi] == '?' || runeEq(p[pi], n[ni], caseSensitive)):
			pi++
			ni++
		case pi < len(p) && p[pi] == '*':
			starPat = pi + 1
			starName = ni
			pi++
		case starPat >= 0:
			// Mismatch past a '*': widen the star by one character and
			// retry from the checkpoint.
			starName++
			ni = starName
			pi = starPat
		default:
			return false
		}
	}

	// Name exhausted; whatever pattern remains must be all stars.
	for ; pi < len(p); pi++ {
		if p[pi] != '*' {
			return false
		}
	}

	return true
}

// MatchAny reports whether name matches at least one of the patterns. An
// empty pattern list, or a list containing the literal "*", matches every
// name. This is the filter entry point used by the directory walker.
func MatchAny(name string, patterns []string, caseSensitive bool) bool {
	if len(patterns) == 0 {
		return true
	}

	for _, p := range patterns {
		if p == "*" {
			return true
		}
	}

	for _, p := range patterns {
		if Match(name, p, caseSensitive) {
			return true
		}
	}

	return false
}

func runeEq(a, b rune, caseSensitive bool) bool {
	if a == b {
		return true
	}
	if caseSensitive {
		return false
	}

	return asciiLower(a) == asciiLower(b)
}

func asciiLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
