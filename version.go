package markov

// Version is the current release of the markov module and command.
const Version = "0.4.0"
