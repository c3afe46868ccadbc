//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/propstore/winspskb --repository.default-branch master --repository.path /

package winspskb
