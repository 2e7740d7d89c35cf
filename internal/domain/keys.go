package domain

// KeyPrefix namespaces all store keys written by this module.
var KeyPrefix = "lafactoria:search:"
