package runtime

// The prelude is written in rl and evaluated into the global environment at
// bootstrap.
var preludeSources = []string{
	`
fn abs(x) {
    if (x < 0) {
        return -x;
    }
    return x;
}
`,
	`
fn min(a, b) {
    if (a < b) {
        return a;
    }
    return b;
}

fn max(a, b) {
    if (a > b) {
        return a;
    }
    return b;
}
`,
}
