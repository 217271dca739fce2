package main

// Version represents the current version of the application
const Version = "0.3.0"

// AppName is used for the lock file and notification titles
const AppName = "clickmacro"
