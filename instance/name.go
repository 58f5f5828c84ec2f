package instance

// AppName is what the app calls itself in usage and error output.
const AppName = "entab"
