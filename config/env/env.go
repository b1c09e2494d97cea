package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

const PREFIX = "DEVPORTAL_"

var OsEnvironMu = sync.Mutex{}
var OsEnviron = os.Environ

func SetTestOsEnviron(f func() []string) {
	OsEnvironMu.Lock()
	defer OsEnvironMu.Unlock()

	OsEnviron = f
}

// Lookup reads a plain environment variable through OsEnviron
// so tests can replace the environment.
func Lookup(name string) (string, bool) {
	OsEnvironMu.Lock()
	envVars := OsEnviron()
	OsEnvironMu.Unlock()

	for _, v := range envVars {
		key, value, found := strings.Cut(v, "=")
		if found && key == name {
			return value, true
		}
	}
	return "", false
}

// Map returns the whole environment as key value pairs.
func Map() map[string]string {
	OsEnvironMu.Lock()
	envVars := OsEnviron()
	OsEnvironMu.Unlock()

	result := make(map[string]string, len(envVars))
	for _, v := range envVars {
		if key, value, found := strings.Cut(v, "="); found {
			result[key] = value
		}
	}
	return result
}

// Decode overrides the fields of conf with DEVPORTAL_<NAME> variables. The name is read
// from the env struct tag with a fallback to the hcl one.
func Decode(conf interface{}) error {
	return DecodeWithPrefix(conf, "")
}

func DecodeWithPrefix(conf interface{}, prefix string) error {
	ctxPrefix := PREFIX + prefix
	envMap := make(map[string]string)

	for key, value := range Map() {
		if !strings.HasPrefix(key, ctxPrefix) {
			continue
		}
		envMap[strings.ToLower(key[len(ctxPrefix):])] = value
	}

	if len(envMap) == 0 {
		return nil
	}

	val := reflect.ValueOf(conf)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)

		switch val.Field(i).Kind() {
		case reflect.Ptr:
			continue
		case reflect.Struct:
			if err := DecodeWithPrefix(val.Field(i).Addr().Interface(), prefix); err != nil {
				return err
			}
			continue
		default:
		}

		envVal, ok := field.Tag.Lookup("env")
		if !ok { // fallback to hcl struct tag
			envVal, ok = field.Tag.Lookup("hcl")
			if !ok {
				continue
			}
		}
		envVal = strings.Split(envVal, ",")[0]

		mapVal, exist := envMap[envVal]
		if !exist || mapVal == "" {
			continue
		}

		variableName := strings.ToUpper(ctxPrefix + envVal)
		switch val.Field(i).Interface().(type) {
		case bool:
			val.Field(i).SetBool(mapVal == "true")
		case int:
			intVal, err := strconv.Atoi(mapVal)
			if err != nil {
				return fmt.Errorf("invalid integer value for %q: %s", variableName, mapVal)
			}
			val.Field(i).SetInt(int64(intVal))
		case string:
			val.Field(i).SetString(mapVal)
		case []string:
			slice := strings.Split(mapVal, ",")
			for idx, v := range slice {
				slice[idx] = strings.TrimSpace(v)
			}
			val.Field(i).Set(reflect.ValueOf(slice))
		case time.Duration:
			parsedDuration, err := time.ParseDuration(mapVal)
			if err != nil {
				return fmt.Errorf("invalid duration value for %q: %s", variableName, mapVal)
			}
			val.Field(i).Set(reflect.ValueOf(parsedDuration))
		default:
			return fmt.Errorf("env decode: type mapping not implemented: %v", reflect.TypeOf(val.Field(i).Interface()))
		}
	}
	return nil
}
