/*
Package utils provides decorators shared by all custody applications:
savepoints, panic recovery, logging, metrics and result tagging.
*/
package utils
