package fdstream

const Version = "0.1.0"
