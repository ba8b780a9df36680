package cli

// RunWithIO runs the app with the given stdin and stdout
var RunWithIO = run
