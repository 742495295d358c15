// Package sharedmimeinfo reads the subclass hierarchy of the [Shared MIME-info specification].
// It is used to fall back on a broader type when no handler exists for the exact one.
// For example, text/x-python is a subclass of application/x-executable and, implicitly, of
// text/plain.
//
// [Shared MIME-info specification]: https://specifications.freedesktop.org/shared-mime-info-spec/0.22/
package sharedmimeinfo
