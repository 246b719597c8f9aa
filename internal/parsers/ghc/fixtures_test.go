// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ghc

const (
	validHeader = `	Thu Dec 29 13:55 2016 Time and Allocation Profiling Report  (Final)

	   rncryptor-tests +RTS -p -RTS

	total time  =       53.62 secs   (53615 ticks @ 1000 us, 1 processor)
	total alloc = 60,261,923,248 bytes  (excludes profiling overheads)
`

	validFlatSummary = `
COST CENTRE                                       MODULE                      %time %alloc

makeKey                                           Crypto.RNCryptor.Types       61.0   89.5
encryptBlock                                      Crypto.RNCryptor.V3.Encrypt  12.5    0.0
decryptBlock                                      Crypto.RNCryptor.V3.Decrypt  12.5    0.0
fastRandBs.hashes                                 Data.ByteString.Arbitrary     5.3    1.7
encryptBytes                                      Crypto.RNCryptor.V3.Encrypt   5.2    1.7
decryptBytes                                      Crypto.RNCryptor.V3.Decrypt   1.5    1.7
streamingRoundTrip                                Tests                         0.6    1.7
encryptStreamWithContext.finaliseEncryption.(...) Crypto.RNCryptor.V3.Encrypt   0.6    1.7
fastRandBs                                        Data.ByteString.Arbitrary     0.4    1.7

`

	validSeparator = `
                                                                                                                          individual     inherited
COST CENTRE                                                    MODULE                                   no.     entries  %time %alloc   %time %alloc

`

	validExtendedSummary = `MAIN                                                           MAIN                                     559           0    0.3    0.0   100.0  100.0
 arbitrary                                                     Tests                                   2302           0    0.0    0.0     5.6    3.5
  arbitrary                                                    Data.ByteString.Arbitrary               2304           0    0.0    0.0     5.6    3.5
   fastRandBs                                                  Data.ByteString.Arbitrary               2307           0    0.4    1.7     5.6    3.5
    slowRandBs                                                 Data.ByteString.Arbitrary               2319           0    0.0    0.0     0.0    0.0
    fastRandBs.preChunks                                       Data.ByteString.Arbitrary               2313         100    0.0    0.0     0.0    0.0
    fastRandBs.hashes                                          Data.ByteString.Arbitrary               2312         100    5.3    1.7     5.3    1.7
`

	// A branching call tree whose rows at equal depth follow deeper rows.
	branchingExtendedSummary = `MAIN                 MAIN                      559           0    0.3    0.0   100.0  100.0
 CAF                 Main                     1116           0    0.0    0.0    94.4   96.5
  main               Main                     1118           1    0.0    0.0    94.4   96.5
   makeKey           Crypto.RNCryptor.Types   2290         200   61.0   89.5    61.0   89.5
  streamingRoundTrip Tests                    2300         100    0.6    1.7     0.6    1.7
 CAF                 GHC.IO.Handle.FD         1070           0    0.0    0.0     0.0    0.0
`

	validReport = validHeader + validFlatSummary + validSeparator + validExtendedSummary
)
