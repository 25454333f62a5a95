package worker

// Package worker talks to the asset worker process: the typed message and
// command protocol, the JSON-lines codec and the forked process client.
