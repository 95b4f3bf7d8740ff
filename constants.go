package bfrun

// DEBUG turns on the chatty log lines sprinkled through the tool layer.
const DEBUG = false
