package ledsign

// DefaultConfig is written by `ledsign --installconfig`.
const DefaultConfig = `# ledsign configuration

# Directory containing template JSON files.
templates = "~/.config/ledsign/templates"

# Directory containing icon assets (static icons and weather sets).
icons = "~/.config/ledsign/icons"

# Seconds to show each template before rotating to the next.
delay = 60

# Frames rendered per second.
framerate = 30

# Enable debug logging.
debug = false
`
