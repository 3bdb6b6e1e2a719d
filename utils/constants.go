package utils

import "time"

// EmailVerificationPrefix is the prefix used for Redis email verification keys.
const EmailVerificationPrefix = "verify-email:"

// EmailVerificationTTL is how long a confirmation link stays valid.
const EmailVerificationTTL = 24 * time.Hour

// PasswordResetPrefix is the prefix used for Redis password reset keys.
const PasswordResetPrefix = "reset-password:"

// PasswordResetTTL is how long a reset link stays valid.
const PasswordResetTTL = time.Hour

// EarthRadiusKm is the mean Earth radius used for distance computations.
const EarthRadiusKm = 6371.0
